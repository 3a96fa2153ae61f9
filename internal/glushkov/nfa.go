// Package glushkov builds position automata from syntax trees and runs them.
//
// States of an Automaton are the literal positions of the tagged tree plus a
// virtual start state. There are no epsilon transitions: entering position q
// always consumes the symbol stored at q.
package glushkov

import (
	"gregex/internal/bitset"
	"gregex/internal/syntax"
)

// Automaton is a compiled Glushkov NFA. It is never modified after Build and
// may be shared between goroutines.
type Automaton struct {
	size     int
	nullable bool
	first    *bitset.Set
	last     *bitset.Set
	follow   []*bitset.Set
	symbols  []rune
	masks    map[rune]*bitset.Set
	alphabet []rune
}

// Build compiles a tagged tree. Every literal must carry a position in
// [0, n) where n is the number of literals, and no two literals may share one.
func Build(root syntax.Node) (*Automaton, error) {
	b, err := newBuilder(root)
	if err != nil {
		return nil, err
	}
	info := b.visit(root)

	a := &Automaton{
		size:     b.size,
		nullable: info.nullable,
		first:    info.first,
		last:     info.last,
		follow:   b.follow,
		symbols:  b.symbols,
		masks:    make(map[rune]*bitset.Set),
	}
	for p, r := range a.symbols {
		m, ok := a.masks[r]
		if !ok {
			m = bitset.New(a.size)
			a.masks[r] = m
			a.alphabet = append(a.alphabet, r)
		}
		m.Add(p)
	}
	return a, nil
}

// Size returns the number of literal positions.
func (a *Automaton) Size() int { return a.size }

// Nullable reports whether the pattern accepts the empty string.
func (a *Automaton) Nullable() bool { return a.nullable }

// First returns the positions that can match the first symbol of an input.
func (a *Automaton) First() []int { return a.first.Slice() }

// Accepting returns the positions that can match the last symbol of an input.
func (a *Automaton) Accepting() []int { return a.last.Slice() }

// Follow returns the positions that may come right after p.
func (a *Automaton) Follow(p int) []int {
	if p < 0 || p >= a.size {
		return nil
	}
	return a.follow[p].Slice()
}

// Symbol returns the character consumed when entering position p.
func (a *Automaton) Symbol(p int) rune { return a.symbols[p] }

// Alphabet returns the distinct symbols in order of first appearance.
func (a *Automaton) Alphabet() []rune {
	return append([]rune(nil), a.alphabet...)
}

// Transitions returns the edge count of the automaton, including edges out of
// the start state.
func (a *Automaton) Transitions() int {
	n := a.first.Count()
	for _, f := range a.follow {
		n += f.Count()
	}
	return n
}
