package syntax

import (
	"strings"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindEmpty    Kind = iota // ε
	KindLiteral              // single character
	KindConcat               // left then right
	KindUnion                // left or right
	KindRepeat               // zero or more
	KindOptional             // zero or one
	KindPlus                 // one or more
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindLiteral:  "literal",
	KindConcat:   "concat",
	KindUnion:    "union",
	KindRepeat:   "repeat",
	KindOptional: "optional",
	KindPlus:     "plus",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is a pattern syntax tree node. The set of implementations is closed:
// *Empty, *Literal, *Concat, *Union, *Repeat, *Optional and *Plus.
type Node interface {
	Kind() Kind
	String() string
	node()
}

// Empty matches only the empty string.
type Empty struct{}

// Literal matches a single character. Pos is meaningful only when Tagged is set.
type Literal struct {
	Symbol rune
	Pos    int
	Tagged bool
}

type Concat struct {
	Left, Right Node
}

type Union struct {
	Left, Right Node
}

// Repeat is the Kleene star of Child.
type Repeat struct {
	Child Node
}

type Optional struct {
	Child Node
}

// Plus matches one or more occurrences of Child.
type Plus struct {
	Child Node
}

func (*Empty) Kind() Kind    { return KindEmpty }
func (*Literal) Kind() Kind  { return KindLiteral }
func (*Concat) Kind() Kind   { return KindConcat }
func (*Union) Kind() Kind    { return KindUnion }
func (*Repeat) Kind() Kind   { return KindRepeat }
func (*Optional) Kind() Kind { return KindOptional }
func (*Plus) Kind() Kind     { return KindPlus }

func (*Empty) node()    {}
func (*Literal) node()  {}
func (*Concat) node()   {}
func (*Union) node()    {}
func (*Repeat) node()   {}
func (*Optional) node() {}
func (*Plus) node()     {}

// Position returns the literal's position and whether it has been tagged.
func (l *Literal) Position() (int, bool) {
	return l.Pos, l.Tagged
}

// String renders a node in the textual pattern syntax. The output parses
// back into a structurally equal tree.
func (e *Empty) String() string    { return render(e) }
func (l *Literal) String() string  { return render(l) }
func (c *Concat) String() string   { return render(c) }
func (u *Union) String() string    { return render(u) }
func (r *Repeat) String() string   { return render(r) }
func (o *Optional) String() string { return render(o) }
func (p *Plus) String() string     { return render(p) }

const metaChars = `|*+?()\`

// precedence levels used when deciding where parentheses are needed
const (
	precUnion = iota
	precConcat
	precPostfix
	precAtom
)

func precedence(n Node) int {
	switch n.(type) {
	case *Union:
		return precUnion
	case *Concat:
		return precConcat
	case *Repeat, *Optional, *Plus:
		return precPostfix
	default:
		return precAtom
	}
}

func render(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil, *Empty:
		sb.WriteString("()")
	case *Literal:
		if strings.ContainsRune(metaChars, v.Symbol) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(v.Symbol)
	case *Concat:
		// sequences fold to the left, so a right-nested concat keeps its parens
		writeOperand(sb, v.Left, precConcat)
		writeOperand(sb, v.Right, precPostfix)
	case *Union:
		writeOperand(sb, v.Left, precUnion)
		sb.WriteByte('|')
		writeOperand(sb, v.Right, precConcat)
	case *Repeat:
		writeOperand(sb, v.Child, precAtom)
		sb.WriteByte('*')
	case *Optional:
		writeOperand(sb, v.Child, precAtom)
		sb.WriteByte('?')
	case *Plus:
		writeOperand(sb, v.Child, precAtom)
		sb.WriteByte('+')
	}
}

func writeOperand(sb *strings.Builder, n Node, floor int) {
	if precedence(n) < floor {
		sb.WriteByte('(')
		writeNode(sb, n)
		sb.WriteByte(')')
		return
	}
	writeNode(sb, n)
}
