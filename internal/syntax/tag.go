package syntax

// Tag returns a copy of n in which every literal carries a unique position,
// numbered from 0 in left-to-right order. n itself is left untouched and
// should be dropped by the caller. Tagging a tree that already has a tagged
// literal fails with ErrAlreadyTagged.
func Tag(n Node) (Node, error) {
	if err := checkUntagged(n); err != nil {
		return nil, err
	}
	next := 0
	return tag(n, &next), nil
}

func checkUntagged(n Node) error {
	var err error
	Walk(n, func(n Node) bool {
		if err != nil {
			return false
		}
		if l, ok := n.(*Literal); ok && l.Tagged {
			err = &Error{Kind: AlreadyTagged, Symbol: l.Symbol, Pos: l.Pos}
		}
		return err == nil
	})
	return err
}

func tag(n Node, next *int) Node {
	switch v := n.(type) {
	case nil, *Empty:
		return &Empty{}
	case *Literal:
		pos := *next
		*next = pos + 1
		return &Literal{Symbol: v.Symbol, Pos: pos, Tagged: true}
	case *Concat:
		left := tag(v.Left, next)
		return &Concat{Left: left, Right: tag(v.Right, next)}
	case *Union:
		left := tag(v.Left, next)
		return &Union{Left: left, Right: tag(v.Right, next)}
	case *Repeat:
		return &Repeat{Child: tag(v.Child, next)}
	case *Optional:
		return &Optional{Child: tag(v.Child, next)}
	case *Plus:
		return &Plus{Child: tag(v.Child, next)}
	default:
		panic("syntax: unknown node")
	}
}

// Walk visits n and its descendants in pre-order, left to right. Children
// are skipped when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Concat:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case *Union:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case *Repeat:
		Walk(v.Child, fn)
	case *Optional:
		Walk(v.Child, fn)
	case *Plus:
		Walk(v.Child, fn)
	}
}

// Literals returns the number of literal occurrences in n.
func Literals(n Node) int {
	count := 0
	Walk(n, func(n Node) bool {
		if n.Kind() == KindLiteral {
			count++
		}
		return true
	})
	return count
}

// Equal reports whether a and b have the same shape and symbols. Positions
// are ignored; a nil node equals Empty.
func Equal(a, b Node) bool {
	if a == nil {
		a = &Empty{}
	}
	if b == nil {
		b = &Empty{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Empty:
		return true
	case *Literal:
		return x.Symbol == b.(*Literal).Symbol
	case *Concat:
		y := b.(*Concat)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Union:
		y := b.(*Union)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Repeat:
		return Equal(x.Child, b.(*Repeat).Child)
	case *Optional:
		return Equal(x.Child, b.(*Optional).Child)
	case *Plus:
		return Equal(x.Child, b.(*Plus).Child)
	}
	return false
}
