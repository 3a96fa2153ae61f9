package glushkov

import "gregex/internal/bitset"

// Match reports whether the whole input is in the language of a.
func (a *Automaton) Match(input string) bool {
	if input == "" {
		return a.nullable
	}
	sim := a.newSimulation()
	for _, c := range input {
		if !sim.step(c) {
			return false
		}
	}
	return sim.accepted()
}

// MatchRunes is Match over a rune slice.
func (a *Automaton) MatchRunes(input []rune) bool {
	if len(input) == 0 {
		return a.nullable
	}
	sim := a.newSimulation()
	for _, c := range input {
		if !sim.step(c) {
			return false
		}
	}
	return sim.accepted()
}

// simulation is the per-call state: active holds the positions reached by
// the input consumed so far, candidates the positions allowed next.
type simulation struct {
	a          *Automaton
	active     *bitset.Set
	candidates *bitset.Set
}

func (a *Automaton) newSimulation() *simulation {
	return &simulation{
		a:          a,
		active:     bitset.New(a.size),
		candidates: a.first.Clone(),
	}
}

// step consumes c and returns false once no position is active.
func (s *simulation) step(c rune) bool {
	mask, ok := s.a.masks[c]
	if !ok {
		s.active.Clear()
		return false
	}
	s.active.AndOf(s.candidates, mask)
	if s.active.Empty() {
		return false
	}
	s.candidates.Clear()
	s.active.ForEach(func(p int) {
		s.candidates.Or(s.a.follow[p])
	})
	return true
}

func (s *simulation) accepted() bool {
	return s.active.Intersects(s.a.last)
}
