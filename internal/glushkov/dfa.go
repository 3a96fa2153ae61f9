package glushkov

import (
	"gregex/internal/bitset"
)

type dfaState struct {
	id        int
	accept    bool
	positions *bitset.Set
	trans     map[rune]int
}

// DFA is the subset construction of an Automaton. It exists for inspection
// and cross-checking; Automaton.Match never uses it.
type DFA struct {
	States []*dfaState
	Alpha  []rune
}

// Determinize runs the subset construction over position sets. State 0 is
// the start state; the rest are numbered in breadth-first order.
func (a *Automaton) Determinize() *DFA {
	start := &dfaState{id: 0, accept: a.nullable, positions: bitset.New(a.size), trans: map[rune]int{}}
	d := &DFA{States: []*dfaState{start}, Alpha: a.Alphabet()}
	index := map[string]int{}

	queue := []*dfaState{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		candidates := a.first
		if cur.id != 0 {
			candidates = bitset.New(a.size)
			cur.positions.ForEach(func(p int) {
				candidates.Or(a.follow[p])
			})
		}
		for _, sym := range d.Alpha {
			next := bitset.New(a.size)
			next.AndOf(candidates, a.masks[sym])
			if next.Empty() {
				continue
			}
			k := next.Key()
			id, exists := index[k]
			if !exists {
				id = len(d.States)
				s := &dfaState{id: id, accept: next.Intersects(a.last), positions: next, trans: map[rune]int{}}
				index[k] = id
				d.States = append(d.States, s)
				queue = append(queue, s)
			}
			cur.trans[sym] = id
		}
	}
	return d
}

// Match runs the DFA over input.
func (d *DFA) Match(input string) bool {
	cur := d.States[0]
	for _, c := range input {
		next, ok := cur.trans[c]
		if !ok {
			return false
		}
		cur = d.States[next]
	}
	return cur.accept
}

// Accepting reports whether state id is accepting.
func (d *DFA) Accepting(id int) bool { return d.States[id].accept }

// Positions returns the Glushkov positions merged into DFA state id.
func (d *DFA) Positions(id int) []int { return d.States[id].positions.Slice() }
