// Package bitset implements fixed-capacity sets of automaton positions.
package bitset

import (
	"encoding/binary"
	"math/bits"
	"strconv"
	"strings"
)

// Set is a compact set of positions in [0, Len()).
type Set struct {
	words []uint64
	n     int
}

func New(n int) *Set {
	return &Set{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

// Of returns a set of capacity n holding positions.
func Of(n int, positions ...int) *Set {
	s := New(n)
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

func (s *Set) Len() int { return s.n }

func (s *Set) Add(i int)           { s.words[i/64] |= 1 << (i % 64) }
func (s *Set) Contains(i int) bool { return i >= 0 && i < s.n && s.words[i/64]&(1<<(i%64)) != 0 }

// Or adds every member of other to s.
func (s *Set) Or(other *Set) {
	for i := range s.words {
		if i < len(other.words) {
			s.words[i] |= other.words[i]
		}
	}
}

// AndOf stores a ∩ b into s.
func (s *Set) AndOf(a, b *Set) {
	for i := range s.words {
		var w uint64
		if i < len(a.words) && i < len(b.words) {
			w = a.words[i] & b.words[i]
		}
		s.words[i] = w
	}
}

func (s *Set) Intersects(other *Set) bool {
	for i := range s.words {
		if i < len(other.words) && s.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

func (s *Set) Clone() *Set {
	c := New(s.n)
	copy(c.words, s.words)
	return c
}

// CopyFrom overwrites s with the contents of other.
func (s *Set) CopyFrom(other *Set) {
	s.Clear()
	copy(s.words, other.words)
}

func (s *Set) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Count() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

func (s *Set) Equal(other *Set) bool {
	if s.n != other.n {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// ForEach calls f for every member in ascending order.
func (s *Set) ForEach(f func(int)) {
	for i, w := range s.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			f(i*64 + bit)
			w &^= 1 << bit
		}
	}
}

// Slice returns the members in ascending order.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Count())
	s.ForEach(func(p int) { out = append(out, p) })
	return out
}

func (s *Set) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// Key returns an opaque byte string usable as a map key.
func (s *Set) Key() string {
	if len(s.words) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(s.words) * 8)
	var buf [8]byte
	for _, w := range s.words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = sb.Write(buf[:])
	}
	return sb.String()
}

// String formats the set as {p0 p1 ...}.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.ForEach(func(p int) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.Itoa(p))
	})
	sb.WriteByte('}')
	return sb.String()
}
