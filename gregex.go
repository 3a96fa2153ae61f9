// Package gregex matches strings against regular expressions compiled with
// Glushkov's construction.
//
// A pattern is a syntax tree built with the helpers below or parsed from
// text. Compile tags the tree with literal positions and turns it into an
// epsilon-free NFA that is simulated with position bit-sets:
//
//	re := gregex.MustCompile(gregex.Seq(gregex.Star(gregex.Lit('a')), gregex.Word("bc")))
//	re.Match("aaabc") // true
package gregex

import (
	"fmt"
	"log/slog"

	"gregex/internal/glushkov"
	"gregex/internal/pattern"
	"gregex/internal/syntax"
)

type (
	Node      = syntax.Node
	Automaton = glushkov.Automaton
	DFA       = glushkov.DFA
	Error     = syntax.Error
	ErrorKind = syntax.ErrorKind
)

const (
	AlreadyTagged   = syntax.AlreadyTagged
	UntaggedLiteral = syntax.UntaggedLiteral
	InvalidPosition = syntax.InvalidPosition
)

var (
	ErrAlreadyTagged   = syntax.ErrAlreadyTagged
	ErrUntaggedLiteral = syntax.ErrUntaggedLiteral
	ErrInvalidPosition = syntax.ErrInvalidPosition
)

func Eps() Node                { return syntax.Eps() }
func Lit(r rune) Node          { return syntax.Lit(r) }
func Word(s string) Node       { return syntax.Word(s) }
func Star(n Node) Node         { return syntax.Star(n) }
func Opt(n Node) Node          { return syntax.Opt(n) }
func OneOrMore(n Node) Node    { return syntax.OneOrMore(n) }
func Seq(nodes ...Node) Node   { return syntax.Seq(nodes...) }
func Or(nodes ...Node) Node    { return syntax.Or(nodes...) }
func Tag(n Node) (Node, error) { return syntax.Tag(n) }

// Regex is a compiled pattern. It is immutable and safe for concurrent use.
type Regex struct {
	tree Node
	nfa  *glushkov.Automaton
}

// Compile tags tree and builds its automaton. tree must not be tagged yet.
func Compile(tree Node) (*Regex, error) {
	tagged, err := syntax.Tag(tree)
	if err != nil {
		return nil, err
	}
	return CompileTagged(tagged)
}

// CompileTagged builds the automaton of a tree whose literals already carry
// positions, for example the result of Tag.
func CompileTagged(tree Node) (*Regex, error) {
	nfa, err := glushkov.Build(tree)
	if err != nil {
		return nil, err
	}
	slog.Debug("compiled pattern",
		"pattern", tree.String(),
		"positions", nfa.Size(),
		"transitions", nfa.Transitions(),
		"nullable", nfa.Nullable())
	return &Regex{tree: tree, nfa: nfa}, nil
}

func MustCompile(tree Node) *Regex {
	re, err := Compile(tree)
	if err != nil {
		panic(err)
	}
	return re
}

// Parse compiles a textual pattern such as "a(b|c)*d".
func Parse(expr string) (*Regex, error) {
	tree, err := pattern.Parse(expr)
	if err != nil {
		return nil, err
	}
	re, err := Compile(tree)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	return re, nil
}

func MustParse(expr string) *Regex {
	re, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// Match reports whether the whole input matches.
func (r *Regex) Match(input string) bool { return r.nfa.Match(input) }

// MatchRunes is Match over a rune slice.
func (r *Regex) MatchRunes(input []rune) bool { return r.nfa.MatchRunes(input) }

func (r *Regex) Automaton() *Automaton { return r.nfa }

// Tree returns the tagged syntax tree.
func (r *Regex) Tree() Node { return r.tree }

func (r *Regex) String() string { return r.tree.String() }
