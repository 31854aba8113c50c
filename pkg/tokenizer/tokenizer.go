package tokenizer

import (
	"errors"
	"sort"
)

// Tokenizer turns Venlyn source text into tokens by walking a lex tree over
// a pushback character stream.
type Tokenizer struct {
	stream     *CharStream
	tree       *LexNode
	lineStarts []int // Rune offset at which each line begins
	tokens     []Token
}

// NewTokenizer creates a tokenizer that uses the default grammar.
func NewTokenizer(input string) *Tokenizer {
	return NewTokenizerWithTree(input, DefaultLexTree())
}

// NewTokenizerWithTree creates a tokenizer over a custom lex tree. The tree
// is only read, so one tree can serve many tokenizers at once.
func NewTokenizerWithTree(input string, tree *LexNode) *Tokenizer {
	return &Tokenizer{
		stream:     NewCharStream(input),
		tree:       tree,
		lineStarts: lineStarts(input),
		tokens:     make([]Token, 0, len(input)/3),
	}
}

// Tokenize tokenizes input with the default grammar.
func Tokenize(input string) ([]Token, error) {
	return NewTokenizer(input).Tokenize()
}

// Tokenize processes the input and returns a slice of tokens. Reaching the
// end of input is not an error. On an unrecognized character the tokens
// read so far are returned together with an *UnrecognizedCharacterError.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	for {
		token, err := t.Next()
		if errors.Is(err, ErrEndOfInput) {
			return t.tokens, nil
		}
		if err != nil {
			return t.tokens, err
		}
		t.tokens = append(t.tokens, token)
	}
}

// Next reads a single token. It returns ErrEndOfInput when only whitespace
// remains and *UnrecognizedCharacterError when the next character cannot
// start a token; in the latter case the character stays in the stream.
func (t *Tokenizer) Next() (Token, error) {
	t.skipWhitespace()
	if t.stream.AtEnd() {
		return Token{}, ErrEndOfInput
	}

	start := t.stream.Offset()

	if token, ok := t.matchNumeric(); ok {
		token.Span = t.spanFrom(start)
		return token, nil
	}

	if kind, ok := t.matchLexTree(); ok {
		return NewToken(kind, t.spanFrom(start)), nil
	}

	if name, ok := t.matchIdentifier(); ok {
		return NewIdToken(name, t.spanFrom(start)), nil
	}

	r, _ := t.stream.Peek()
	return Token{}, &UnrecognizedCharacterError{
		Char:   r,
		Pos:    t.position(start),
		Offset: start,
	}
}

func (t *Tokenizer) spanFrom(start int) Span {
	return Span{Start: t.position(start), End: t.position(t.stream.Offset())}
}

// position converts a rune offset into a line and column.
func (t *Tokenizer) position(offset int) Position {
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1
	return Position{Line: line + 1, Col: offset - t.lineStarts[line] + 1}
}

func lineStarts(input string) []int {
	starts := []int{0}
	offset := 0
	for _, r := range input {
		offset++
		if r == '\n' {
			starts = append(starts, offset)
		}
	}
	return starts
}
