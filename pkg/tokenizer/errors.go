package tokenizer

import (
	"errors"
	"fmt"
)

// ErrEndOfInput is returned by Tokenizer.Next once only whitespace remains.
var ErrEndOfInput = errors.New("end of input")

// UnrecognizedCharacterError reports a character that starts neither a
// numeric literal, a token in the lex tree, nor an identifier.
type UnrecognizedCharacterError struct {
	Char   rune
	Pos    Position
	Offset int // Rune offset into the source
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("tokenisation error at line %d, column %d: unrecognized character %q",
		e.Pos.Line, e.Pos.Col, e.Char)
}

// GrammarError reports an invalid grammar description. It is raised while
// building a lex tree, never while tokenizing.
type GrammarError struct {
	Spelling string
	Reason   string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("invalid grammar at %q: %s", e.Spelling, e.Reason)
}

func grammarErrorf(spelling, format string, args ...any) error {
	return &GrammarError{Spelling: spelling, Reason: fmt.Sprintf(format, args...)}
}
