package glushkov

import (
	"gregex/internal/bitset"
	"gregex/internal/syntax"
)

// posInfo holds the Glushkov attributes of one subtree.
type posInfo struct {
	nullable    bool
	first, last *bitset.Set
}

type builder struct {
	size    int
	symbols []rune
	follow  []*bitset.Set
}

func newBuilder(root syntax.Node) (*builder, error) {
	b := &builder{size: syntax.Literals(root)}
	b.symbols = make([]rune, b.size)
	b.follow = make([]*bitset.Set, b.size)
	for i := range b.follow {
		b.follow[i] = bitset.New(b.size)
	}

	seen := bitset.New(b.size)
	var err error
	syntax.Walk(root, func(n syntax.Node) bool {
		if err != nil {
			return false
		}
		l, ok := n.(*syntax.Literal)
		if !ok {
			return true
		}
		switch {
		case !l.Tagged:
			err = &syntax.Error{Kind: syntax.UntaggedLiteral, Symbol: l.Symbol, Pos: -1}
		case l.Pos < 0 || l.Pos >= b.size || seen.Contains(l.Pos):
			err = &syntax.Error{Kind: syntax.InvalidPosition, Symbol: l.Symbol, Pos: l.Pos}
		default:
			seen.Add(l.Pos)
			b.symbols[l.Pos] = l.Symbol
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// visit computes nullable, first and last of n bottom-up and records the
// follow pairs contributed by n.
func (b *builder) visit(n syntax.Node) posInfo {
	switch v := n.(type) {
	case nil, *syntax.Empty:
		return posInfo{nullable: true, first: bitset.New(b.size), last: bitset.New(b.size)}
	case *syntax.Literal:
		return posInfo{first: bitset.Of(b.size, v.Pos), last: bitset.Of(b.size, v.Pos)}
	case *syntax.Concat:
		l := b.visit(v.Left)
		r := b.visit(v.Right)
		b.link(l.last, r.first)
		first := l.first.Clone()
		if l.nullable {
			first.Or(r.first)
		}
		last := r.last.Clone()
		if r.nullable {
			last.Or(l.last)
		}
		return posInfo{nullable: l.nullable && r.nullable, first: first, last: last}
	case *syntax.Union:
		l := b.visit(v.Left)
		r := b.visit(v.Right)
		first := l.first.Clone()
		first.Or(r.first)
		last := l.last.Clone()
		last.Or(r.last)
		return posInfo{nullable: l.nullable || r.nullable, first: first, last: last}
	case *syntax.Repeat:
		c := b.visit(v.Child)
		b.link(c.last, c.first)
		return posInfo{nullable: true, first: c.first, last: c.last}
	case *syntax.Optional:
		c := b.visit(v.Child)
		return posInfo{nullable: true, first: c.first, last: c.last}
	case *syntax.Plus:
		c := b.visit(v.Child)
		b.link(c.last, c.first)
		return c
	default:
		panic("glushkov: unknown syntax node")
	}
}

// link adds every position of to into follow(p) for p in from.
func (b *builder) link(from, to *bitset.Set) {
	from.ForEach(func(p int) {
		b.follow[p].Or(to)
	})
}
