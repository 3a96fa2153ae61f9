package syntax

import "fmt"

// ErrorKind classifies structural tree errors.
type ErrorKind int

const (
	// AlreadyTagged is reported when tagging a tree that carries positions.
	AlreadyTagged ErrorKind = iota + 1
	// UntaggedLiteral is reported when a literal without a position reaches the compiler.
	UntaggedLiteral
	// InvalidPosition is reported for out of range or duplicate positions.
	InvalidPosition
)

func (k ErrorKind) String() string {
	switch k {
	case AlreadyTagged:
		return "already tagged"
	case UntaggedLiteral:
		return "untagged literal"
	case InvalidPosition:
		return "invalid position"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error describes a malformed syntax tree. These are caller bugs and are never retried.
type Error struct {
	Kind   ErrorKind
	Symbol rune
	Pos    int
}

var (
	ErrAlreadyTagged   = &Error{Kind: AlreadyTagged}
	ErrUntaggedLiteral = &Error{Kind: UntaggedLiteral}
	ErrInvalidPosition = &Error{Kind: InvalidPosition}
)

func (e *Error) Error() string {
	switch e.Kind {
	case AlreadyTagged:
		if e.Symbol == 0 {
			return "syntax: tree already tagged"
		}
		return fmt.Sprintf("syntax: literal %q already tagged with position %d", e.Symbol, e.Pos)
	case UntaggedLiteral:
		if e.Symbol == 0 {
			return "syntax: untagged literal"
		}
		return fmt.Sprintf("syntax: literal %q has no position", e.Symbol)
	case InvalidPosition:
		if e.Symbol == 0 {
			return "syntax: invalid literal position"
		}
		return fmt.Sprintf("syntax: literal %q has invalid position %d", e.Symbol, e.Pos)
	}
	return "syntax: " + e.Kind.String()
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrAlreadyTagged) works
// on errors carrying literal details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
