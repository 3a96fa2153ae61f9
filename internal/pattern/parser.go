// Package pattern parses textual regular expressions into syntax trees.
//
// The syntax covers literals, grouping, alternation and the postfix
// operators *, + and ?. A backslash makes the next character literal.
package pattern

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"gregex/internal/syntax"
)

type Alternation struct {
	Head *Sequence `parser:"@@?"`
	Tail []*Branch `parser:"@@*"`
}

type Branch struct {
	Seq *Sequence `parser:"'|' @@?"`
}

type Sequence struct {
	Terms []*Term `parser:"@@+"`
}

type Term struct {
	Atom *Atom    `parser:"@@"`
	Ops  []string `parser:"@( '*' | '+' | '?' )*"`
}

type Atom struct {
	Pos plexer.Position

	Run    *string `parser:"  @Run"`
	Escape *string `parser:"| @Escape"`
	Group  *Group  `parser:"| @@"`
}

type Group struct {
	Body *Alternation `parser:"'(' @@? ')'"`
}

var parser = participle.MustBuild[Alternation](participle.Lexer(definition{}))

// Parse turns a pattern into an untagged syntax tree. The empty pattern, an
// empty branch and "()" all denote syntax.Empty.
func Parse(pattern string) (syntax.Node, error) {
	if pattern == "" {
		return syntax.Eps(), nil
	}
	ast, err := parser.ParseString("pattern", pattern)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	n, err := ast.Node()
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) syntax.Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (a *Alternation) Node() (syntax.Node, error) {
	if a == nil {
		return syntax.Eps(), nil
	}
	head, err := a.Head.Node()
	if err != nil {
		return nil, err
	}
	branches := []syntax.Node{head}
	for _, br := range a.Tail {
		n, err := br.Seq.Node()
		if err != nil {
			return nil, err
		}
		branches = append(branches, n)
	}
	return syntax.Or(branches...), nil
}

func (s *Sequence) Node() (syntax.Node, error) {
	if s == nil {
		return syntax.Eps(), nil
	}
	var parts []syntax.Node
	for _, t := range s.Terms {
		nodes, err := t.Nodes()
		if err != nil {
			return nil, err
		}
		parts = append(parts, nodes...)
	}
	return syntax.Seq(parts...), nil
}

// Nodes returns the concatenated pieces of a term. Postfix operators after a
// run apply to its last character only, so "ab*" is a followed by b*.
func (t *Term) Nodes() ([]syntax.Node, error) {
	var nodes []syntax.Node
	switch a := t.Atom; {
	case a.Run != nil:
		if !utf8.ValidString(*a.Run) {
			return nil, fmt.Errorf("%s: invalid UTF-8 in %q", a.Pos, *a.Run)
		}
		for _, r := range *a.Run {
			nodes = append(nodes, syntax.Lit(r))
		}
	case a.Escape != nil:
		r, size := utf8.DecodeRuneInString((*a.Escape)[1:])
		if r == utf8.RuneError || 1+size != len(*a.Escape) {
			return nil, fmt.Errorf("%s: invalid escape %q", a.Pos, *a.Escape)
		}
		nodes = append(nodes, syntax.Lit(r))
	case a.Group != nil:
		n, err := a.Group.Body.Node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	default:
		return nil, fmt.Errorf("%s: empty atom", a.Pos)
	}

	last := nodes[len(nodes)-1]
	for _, op := range t.Ops {
		switch op {
		case "*":
			last = syntax.Star(last)
		case "+":
			last = syntax.OneOrMore(last)
		case "?":
			last = syntax.Opt(last)
		}
	}
	nodes[len(nodes)-1] = last
	return nodes, nil
}
