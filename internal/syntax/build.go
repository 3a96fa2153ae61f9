package syntax

// Tree builders. They only allocate nodes; the results are untagged and
// behave exactly like hand-built trees.

func Eps() Node { return &Empty{} }

func Lit(r rune) Node { return &Literal{Symbol: r} }

// Word concatenates the runes of s. An empty string yields Empty.
func Word(s string) Node {
	var nodes []Node
	for _, r := range s {
		nodes = append(nodes, Lit(r))
	}
	return Seq(nodes...)
}

func Star(n Node) Node { return &Repeat{Child: n} }

func Opt(n Node) Node { return &Optional{Child: n} }

func OneOrMore(n Node) Node { return &Plus{Child: n} }

// Seq concatenates nodes, folding to the left: Seq(a, b, c) is
// Concat(Concat(a, b), c).
func Seq(nodes ...Node) Node {
	return fold(nodes, func(l, r Node) Node { return &Concat{Left: l, Right: r} })
}

// Or is the left-folded union of nodes.
func Or(nodes ...Node) Node {
	return fold(nodes, func(l, r Node) Node { return &Union{Left: l, Right: r} })
}

func fold(nodes []Node, join func(l, r Node) Node) Node {
	if len(nodes) == 0 {
		return &Empty{}
	}
	result := nodes[0]
	for _, n := range nodes[1:] {
		result = join(result, n)
	}
	return result
}
