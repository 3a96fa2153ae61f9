package pattern

import (
	"fmt"
	"io"

	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types produced by the pattern lexer.
const (
	tokRun plexer.TokenType = iota + 1
	tokEscape
	tokPunct
)

var symbols = map[string]plexer.TokenType{
	"EOF":    plexer.EOF,
	"Run":    tokRun,
	"Escape": tokEscape,
	"Punct":  tokPunct,
}

var tokens = mustLexer()

func mustLexer() *lexmachine.Lexer {
	l := lexmachine.NewLexer()
	l.Add([]byte(`\\(.|\n)`), tokAction(tokEscape))
	l.Add([]byte(`[|]`), tokAction(tokPunct))
	l.Add([]byte(`[*]`), tokAction(tokPunct))
	l.Add([]byte(`[+]`), tokAction(tokPunct))
	l.Add([]byte(`[?]`), tokAction(tokPunct))
	l.Add([]byte(`[(]`), tokAction(tokPunct))
	l.Add([]byte(`[)]`), tokAction(tokPunct))
	l.Add([]byte(`[^|*+?()\\]+`), tokAction(tokRun))
	if err := l.Compile(); err != nil {
		panic(fmt.Sprintf("pattern: compile lexer: %v", err))
	}
	return l
}

func tokAction(typ plexer.TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return plexer.Token{
			Type:  typ,
			Value: string(m.Bytes),
			Pos:   plexer.Position{Offset: m.TC, Line: m.StartLine, Column: m.StartColumn},
		}, nil
	}
}

// definition adapts the lexmachine DFA to participle.
type definition struct{}

func (definition) Symbols() map[string]plexer.TokenType { return symbols }

func (definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sc, err := tokens.Scanner(data)
	if err != nil {
		return nil, err
	}
	return &scanner{
		filename: filename,
		sc:       sc,
		eof:      plexer.Position{Filename: filename, Offset: len(data), Line: 1, Column: len(data) + 1},
	}, nil
}

type scanner struct {
	filename string
	sc       *lexmachine.Scanner
	eof      plexer.Position
}

func (s *scanner) Next() (plexer.Token, error) {
	tok, err, eos := s.sc.Next()
	if eos {
		return plexer.Token{Type: plexer.EOF, Pos: s.eof}, nil
	}
	if err != nil {
		return plexer.Token{}, fmt.Errorf("%s: %w", s.filename, err)
	}
	t := tok.(plexer.Token)
	t.Pos.Filename = s.filename
	return t, nil
}
