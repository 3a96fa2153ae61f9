package glushkov

import (
	"fmt"

	"gregex/internal/bitset"
)

// Minimize merges equivalent DFA states by partition refinement. Missing
// transitions go to an implicit dead state, which is never materialised.
// States of the result are renumbered breadth-first from the start state and
// carry the union of the positions they merged.
func (d *DFA) Minimize() *DFA {
	n := len(d.States)
	if n == 0 {
		return d
	}

	block := make([]int, n)
	for i, s := range d.States {
		if s.accept {
			block[i] = 1
		}
	}
	count := countBlocks(block)

	for {
		sigs := map[string]int{}
		next := make([]int, n)
		for i, s := range d.States {
			sig := fmt.Sprint(block[i])
			for _, c := range d.Alpha {
				to, ok := s.trans[c]
				if !ok {
					sig += ",-"
					continue
				}
				sig += fmt.Sprintf(",%d", block[to])
			}
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[i] = id
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// renumber blocks breadth-first from the start block
	order := map[int]int{block[0]: 0}
	rep := []int{0}
	for q := 0; q < len(rep); q++ {
		s := d.States[rep[q]]
		for _, c := range d.Alpha {
			to, ok := s.trans[c]
			if !ok {
				continue
			}
			if _, seen := order[block[to]]; !seen {
				order[block[to]] = len(rep)
				rep = append(rep, to)
			}
		}
	}

	size := d.States[0].positions.Len()
	out := &DFA{States: make([]*dfaState, len(rep)), Alpha: d.Alpha}
	for id, r := range rep {
		old := d.States[r]
		s := &dfaState{id: id, accept: old.accept, positions: bitset.New(size), trans: map[rune]int{}}
		for c, to := range old.trans {
			s.trans[c] = order[block[to]]
		}
		out.States[id] = s
	}
	for i, s := range d.States {
		if id, ok := order[block[i]]; ok {
			out.States[id].positions.Or(s.positions)
		}
	}
	return out
}

func countBlocks(block []int) int {
	seen := map[int]bool{}
	for _, b := range block {
		seen[b] = true
	}
	return len(seen)
}
