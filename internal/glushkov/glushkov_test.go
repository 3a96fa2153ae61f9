package glushkov

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gregex/internal/syntax"
)

// ------------------------------------------------------------------- helpers

func build(t *testing.T, tree syntax.Node) *Automaton {
	t.Helper()
	tagged, err := syntax.Tag(tree)
	require.NoError(t, err)
	a, err := Build(tagged)
	require.NoError(t, err)
	return a
}

func acc(t *testing.T, a *Automaton, in string, want bool) {
	t.Helper()
	if got := a.Match(in); got != want {
		t.Fatalf("match %q want %v got %v", in, want, got)
	}
}

// words returns every string over alpha with length <= maxLen.
func words(alpha string, maxLen int) []string {
	out := []string{""}
	level := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, w := range level {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

var (
	a = func() syntax.Node { return syntax.Lit('a') }
	b = func() syntax.Node { return syntax.Lit('b') }
	c = func() syntax.Node { return syntax.Lit('c') }
)

// ------------------------------------------------------------------- construction

func TestBuildSequence(t *testing.T) {
	m := build(t, syntax.Seq(a(), b()))

	assert.False(t, m.Nullable())
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, []int{0}, m.First())
	assert.Equal(t, []int{1}, m.Accepting())
	assert.Equal(t, []int{1}, m.Follow(0))
	assert.Empty(t, m.Follow(1))
	assert.Equal(t, 'a', m.Symbol(0))
	assert.Equal(t, 'b', m.Symbol(1))
	assert.Nil(t, m.Follow(2))
}

func TestBuildChoice(t *testing.T) {
	m := build(t, syntax.Or(a(), b()))

	assert.False(t, m.Nullable())
	assert.Equal(t, []int{0, 1}, m.First())
	assert.Equal(t, []int{0, 1}, m.Accepting())
	assert.Empty(t, m.Follow(0))
	assert.Empty(t, m.Follow(1))
}

func TestBuildNullableSequence(t *testing.T) {
	// a?b
	m := build(t, syntax.Seq(syntax.Opt(a()), b()))

	assert.False(t, m.Nullable())
	assert.Equal(t, []int{0, 1}, m.First())
	assert.Equal(t, []int{1}, m.Accepting())
	assert.Equal(t, []int{1}, m.Follow(0))
}

func TestBuildStarLoops(t *testing.T) {
	// (ab)*c
	m := build(t, syntax.Seq(syntax.Star(syntax.Seq(a(), b())), c()))

	assert.Equal(t, []int{0, 2}, m.First())
	assert.Equal(t, []int{2}, m.Accepting())
	assert.Equal(t, []int{1}, m.Follow(0))
	assert.Equal(t, []int{0, 2}, m.Follow(1))
	assert.Empty(t, m.Follow(2))
	assert.Equal(t, 5, m.Transitions())
}

func TestBuildPlus(t *testing.T) {
	m := build(t, syntax.OneOrMore(syntax.Seq(a(), b())))

	assert.False(t, m.Nullable())
	assert.Equal(t, []int{0}, m.First())
	assert.Equal(t, []int{1}, m.Accepting())
	assert.Equal(t, []int{0}, m.Follow(1))
}

func TestBuildEmptyPattern(t *testing.T) {
	for _, tree := range []syntax.Node{syntax.Eps(), syntax.Star(syntax.Eps()), syntax.Seq(syntax.Eps(), syntax.Eps())} {
		m := build(t, tree)
		assert.Equal(t, 0, m.Size())
		assert.True(t, m.Nullable())
		assert.Empty(t, m.First())
		assert.Empty(t, m.Accepting())
		acc(t, m, "", true)
		acc(t, m, "a", false)
		assert.True(t, m.MatchRunes(nil))
		assert.False(t, m.MatchRunes([]rune("x")))
	}
}

func TestAlphabetOrder(t *testing.T) {
	m := build(t, syntax.Word("banana"))
	assert.Equal(t, []rune{'b', 'a', 'n'}, m.Alphabet())
}

// ------------------------------------------------------------------- errors

func TestBuildUntaggedLiteral(t *testing.T) {
	_, err := Build(syntax.Seq(a(), b()))
	require.Error(t, err)
	assert.ErrorIs(t, err, syntax.ErrUntaggedLiteral)
	assert.EqualError(t, err, `syntax: literal 'a' has no position`)
}

func TestBuildInvalidPositions(t *testing.T) {
	tests := map[string]syntax.Node{
		"duplicate": &syntax.Concat{
			Left:  &syntax.Literal{Symbol: 'a', Pos: 0, Tagged: true},
			Right: &syntax.Literal{Symbol: 'b', Pos: 0, Tagged: true},
		},
		"out of range": &syntax.Concat{
			Left:  &syntax.Literal{Symbol: 'a', Pos: 0, Tagged: true},
			Right: &syntax.Literal{Symbol: 'b', Pos: 2, Tagged: true},
		},
		"negative": &syntax.Literal{Symbol: 'a', Pos: -1, Tagged: true},
	}
	for name, tree := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Build(tree)
			assert.ErrorIs(t, err, syntax.ErrInvalidPosition)
		})
	}
}

func TestBuildHandTaggedTree(t *testing.T) {
	// positions need not follow source order
	tree := &syntax.Concat{
		Left:  &syntax.Literal{Symbol: 'a', Pos: 1, Tagged: true},
		Right: &syntax.Literal{Symbol: 'b', Pos: 0, Tagged: true},
	}
	m, err := Build(tree)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, m.First())
	assert.Equal(t, []int{0}, m.Follow(1))
	acc(t, m, "ab", true)
	acc(t, m, "ba", false)
}

// ------------------------------------------------------------------- simulation

func TestMatchStar(t *testing.T) {
	m := build(t, syntax.Star(a()))
	acc(t, m, "", true)
	acc(t, m, "a", true)
	acc(t, m, "aaaa", true)
	acc(t, m, "b", false)
	acc(t, m, "ab", false)
}

func TestMatchStarThenWord(t *testing.T) {
	// a*bc
	m := build(t, syntax.Seq(syntax.Star(a()), syntax.Seq(b(), c())))
	acc(t, m, "bc", true)
	acc(t, m, "abc", true)
	acc(t, m, "aaabc", true)
	acc(t, m, "a", false)
	acc(t, m, "abcx", false)
	acc(t, m, "", false)
}

func TestMatchUnion(t *testing.T) {
	m := build(t, syntax.Or(a(), b()))
	acc(t, m, "a", true)
	acc(t, m, "b", true)
	acc(t, m, "ab", false)
	acc(t, m, "", false)
	acc(t, m, "c", false)
}

func TestMatchRepeatedSymbols(t *testing.T) {
	// (a|b)*abb
	m := build(t, syntax.Seq(syntax.Star(syntax.Or(a(), b())), syntax.Word("abb")))
	acc(t, m, "abb", true)
	acc(t, m, "babb", true)
	acc(t, m, "aabbabb", true)
	acc(t, m, "ab", false)
	acc(t, m, "abba", false)
	assert.True(t, m.MatchRunes([]rune("ababb")))
}

func TestMatchUnicode(t *testing.T) {
	m := build(t, syntax.Seq(syntax.OneOrMore(syntax.Lit('ж')), syntax.Lit('é')))
	acc(t, m, "жжé", true)
	acc(t, m, "é", false)
}

func TestEmptyInputMatchesNullable(t *testing.T) {
	tests := []struct {
		tree     syntax.Node
		nullable bool
	}{
		{syntax.Eps(), true},
		{a(), false},
		{syntax.Star(a()), true},
		{syntax.Opt(a()), true},
		{syntax.OneOrMore(a()), false},
		{syntax.OneOrMore(syntax.Opt(a())), true},
		{syntax.Or(a(), syntax.Eps()), true},
		{syntax.Seq(a(), syntax.Opt(b())), false},
		{syntax.Seq(syntax.Opt(a()), syntax.Opt(b())), true},
		{syntax.Seq(syntax.Star(a()), b()), false},
	}
	for _, tc := range tests {
		m := build(t, tc.tree)
		assert.Equal(t, tc.nullable, m.Nullable(), tc.tree.String())
		assert.Equal(t, tc.nullable, m.Match(""), tc.tree.String())
	}
}

func TestConcatAssociativity(t *testing.T) {
	subs := []func() syntax.Node{
		a,
		func() syntax.Node { return syntax.Star(b()) },
		func() syntax.Node { return syntax.Or(a(), c()) },
		func() syntax.Node { return syntax.Opt(syntax.Word("ab")) },
		syntax.Eps,
	}
	all := words("abc", 4)
	for _, x := range subs {
		for _, y := range subs {
			for _, z := range subs {
				left := build(t, syntax.Seq(syntax.Seq(x(), y()), z()))
				right := build(t, syntax.Seq(x(), syntax.Seq(y(), z())))
				for _, w := range all {
					if left.Match(w) != right.Match(w) {
						t.Fatalf("associativity fails for %s vs %s on %q", x(), y(), w)
					}
				}
			}
		}
	}
}

func TestRepeatIdempotence(t *testing.T) {
	xs := []syntax.Node{
		a(),
		syntax.Word("ab"),
		syntax.Or(a(), syntax.Word("bc")),
		syntax.Opt(b()),
	}
	all := words("abc", 5)
	for _, x := range xs {
		once := build(t, syntax.Star(x))
		twice := build(t, syntax.Star(syntax.Star(x)))
		for _, w := range all {
			if once.Match(w) != twice.Match(w) {
				t.Fatalf("%s and %s differ on %q", syntax.Star(x), syntax.Star(syntax.Star(x)), w)
			}
		}
	}
}

func TestAcceptingReachable(t *testing.T) {
	trees := []syntax.Node{
		syntax.Seq(syntax.Star(a()), syntax.Word("bc")),
		syntax.Or(syntax.Word("abc"), syntax.Star(syntax.Or(a(), b()))),
		syntax.Seq(syntax.Opt(a()), syntax.OneOrMore(syntax.Seq(b(), syntax.Opt(c())))),
		syntax.Star(syntax.Star(syntax.Word("ab"))),
	}
	for _, tree := range trees {
		m := build(t, tree)
		reached := map[int]bool{}
		queue := m.First()
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			if reached[p] {
				continue
			}
			reached[p] = true
			queue = append(queue, m.Follow(p)...)
		}
		for _, p := range m.Accepting() {
			assert.True(t, reached[p], "%s: accepting position %d unreachable", tree, p)
		}
	}
}

func TestConcurrentMatch(t *testing.T) {
	m := build(t, syntax.Seq(syntax.Star(syntax.Or(a(), b())), syntax.Word("abb")))
	inputs := map[string]bool{"abb": true, "babb": true, "ab": false, "": false, "bbbabb": true}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for in, want := range inputs {
					if m.Match(in) != want {
						errs <- in
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for in := range errs {
		t.Errorf("concurrent match of %q disagreed", in)
	}
}

// ------------------------------------------------------------------- DFA

func TestDFAEquivalence(t *testing.T) {
	trees := []syntax.Node{
		syntax.Seq(syntax.Star(syntax.Or(syntax.Word("ab"), a())), c()),
		syntax.Or(syntax.Word("abc"), syntax.Star(b())),
		syntax.OneOrMore(syntax.Seq(syntax.Opt(a()), b())),
		syntax.Eps(),
	}
	all := words("abc", 4)
	for _, tree := range trees {
		m := build(t, tree)
		d := m.Determinize()
		for _, w := range all {
			if m.Match(w) != d.Match(w) {
				t.Fatalf("equivalence fail for %s on %q", tree, w)
			}
		}
	}
}

func TestDFAStates(t *testing.T) {
	// a|ab: start, {a0,a1}, {b2}
	m := build(t, syntax.Or(a(), syntax.Word("ab")))
	d := m.Determinize()
	require.Len(t, d.States, 3)
	assert.False(t, d.Accepting(0))
	assert.Equal(t, []int{0, 1}, d.Positions(1))
	assert.True(t, d.Accepting(1))
	assert.Equal(t, []int{2}, d.Positions(2))
	assert.True(t, d.Accepting(2))
}

// ------------------------------------------------------------------- DOT

func TestExportDOTAutomaton(t *testing.T) {
	m := build(t, syntax.Seq(syntax.Star(a()), b()))
	var buf bytes.Buffer
	require.NoError(t, ExportDOT(&buf, m))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.Contains(t, out, `start -> p0 [label="a"];`)
	assert.Contains(t, out, `start -> p1 [label="b"];`)
	assert.Contains(t, out, `p0 -> p0 [label="a"];`)
	assert.Contains(t, out, `p1 [shape=doublecircle];`)
	assert.Contains(t, out, `start [shape=circle];`)
}

func TestExportDOTDFA(t *testing.T) {
	m := build(t, syntax.Star(a()))
	var buf bytes.Buffer
	require.NoError(t, ExportDOT(&buf, m.Determinize()))
	assert.Contains(t, buf.String(), `q0 [shape=doublecircle];`)
	assert.Contains(t, buf.String(), `q1 -> q1 [label="a"];`)
}

func TestExportDOTUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ExportDOT(&buf, 42))
	assert.Zero(t, buf.Len())
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		tree   syntax.Node
		states int
	}{
		{syntax.Star(syntax.Or(a(), b())), 1},
		{syntax.Or(syntax.Seq(a(), syntax.Star(a())), syntax.OneOrMore(a())), 2},
		{syntax.Or(a(), syntax.Word("ab")), 3},
		{syntax.Eps(), 1},
	}
	all := words("ab", 5)
	for _, tc := range tests {
		m := build(t, tc.tree)
		d := m.Determinize()
		small := d.Minimize()
		assert.Len(t, small.States, tc.states, tc.tree.String())
		for _, w := range all {
			if d.Match(w) != small.Match(w) {
				t.Fatalf("minimized %s differs on %q", tc.tree, w)
			}
		}
	}
}

func TestMinimizeMergesPositions(t *testing.T) {
	m := build(t, syntax.Star(syntax.Or(a(), b())))
	small := m.Determinize().Minimize()
	require.Len(t, small.States, 1)
	assert.True(t, small.Accepting(0))
	assert.Equal(t, []int{0, 1}, small.Positions(0))
}
