package glushkov

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ExportDOT writes a Graphviz rendering of an *Automaton or *DFA to w.
func ExportDOT(w io.Writer, g any) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "digraph G {")
	fmt.Fprintln(&buf, "    rankdir=LR;")

	switch t := g.(type) {
	case *DFA:
		for _, s := range t.States {
			fmt.Fprintf(&buf, "    q%d [shape=%s];\n", s.id, shape(s.accept))
			for _, ch := range t.Alpha {
				if to, ok := s.trans[ch]; ok {
					fmt.Fprintf(&buf, "    q%d -> q%d [label=%s];\n", s.id, to, label(ch))
				}
			}
		}
		fmt.Fprintln(&buf, "    _start [shape=point]; _start -> q0;")

	case *Automaton:
		fmt.Fprintf(&buf, "    start [shape=%s];\n", shape(t.nullable))
		for p := 0; p < t.size; p++ {
			fmt.Fprintf(&buf, "    p%d [shape=%s];\n", p, shape(t.last.Contains(p)))
		}
		t.first.ForEach(func(q int) {
			fmt.Fprintf(&buf, "    start -> p%d [label=%s];\n", q, label(t.symbols[q]))
		})
		for p, f := range t.follow {
			f.ForEach(func(q int) {
				fmt.Fprintf(&buf, "    p%d -> p%d [label=%s];\n", p, q, label(t.symbols[q]))
			})
		}
		fmt.Fprintln(&buf, "    _start [shape=point]; _start -> start;")

	default:
		return fmt.Errorf("export dot: unsupported graph type %T", g)
	}

	fmt.Fprintln(&buf, "}")
	_, err := w.Write(buf.Bytes())
	return err
}

func shape(accept bool) string {
	if accept {
		return "doublecircle"
	}
	return "circle"
}

func label(r rune) string {
	return strconv.Quote(string(r))
}
