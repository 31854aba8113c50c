package tokenizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode"
)

// Kind identifies the variant of a token.
type Kind string

const (
	// Keywords
	Let Kind = "Let"

	// Tokens that carry data and have no fixed spelling
	Id               Kind = "Id"
	NumericalLiteral Kind = "NumericalLiteral"

	// Operators
	Plus         Kind = "Plus"
	Minus        Kind = "Minus"
	ForwardSlash Kind = "ForwardSlash"
	Star         Kind = "Star"
	BitXor       Kind = "BitXor"
	BitOr        Kind = "BitOr"
	BitAnd       Kind = "BitAnd"

	// Compound assignment
	PlusEq   Kind = "PlusEq"
	MinusEq  Kind = "MinusEq"
	DivEq    Kind = "DivEq"
	MulEq    Kind = "MulEq"
	BitXorEq Kind = "BitXorEq"
	BitOrEq  Kind = "BitOrEq"
	BitAndEq Kind = "BitAndEq"

	// Assignment, comparison and punctuation
	Eq    Kind = "Eq"
	CmpEq Kind = "CmpEq"
	Semi  Kind = "Semi"
)

// spellings maps every fixed-spelling kind to its canonical source text.
// Id and NumericalLiteral have no entry.
var spellings = map[Kind]string{
	Let:          "let",
	Semi:         ";",
	Eq:           "=",
	CmpEq:        "==",
	Plus:         "+",
	PlusEq:       "+=",
	Minus:        "-",
	MinusEq:      "-=",
	ForwardSlash: "/",
	DivEq:        "/=",
	Star:         "*",
	MulEq:        "*=",
	BitXor:       "^",
	BitXorEq:     "^=",
	BitOr:        "|",
	BitOrEq:      "|=",
	BitAnd:       "&",
	BitAndEq:     "&=",
}

// kindsBySpelling is the inverse of spellings.
var kindsBySpelling = func() map[string]Kind {
	m := make(map[string]Kind, len(spellings))
	for kind, spelling := range spellings {
		if other, exists := m[spelling]; exists {
			panic(fmt.Sprintf("spelling %q is shared by %s and %s", spelling, other, kind))
		}
		m[spelling] = kind
	}
	return m
}()

// FixedKinds lists the kinds that have a canonical spelling, in declaration order.
func FixedKinds() []Kind {
	return []Kind{
		Let, Plus, Minus, ForwardSlash, Star, BitXor, BitOr, BitAnd,
		PlusEq, MinusEq, DivEq, MulEq, BitXorEq, BitOrEq, BitAndEq,
		Eq, CmpEq, Semi,
	}
}

// Spelling returns the canonical spelling of a fixed-spelling kind.
// The second result is false for Id and NumericalLiteral.
func (k Kind) Spelling() (string, bool) {
	s, ok := spellings[k]
	return s, ok
}

// HasFixedSpelling reports whether the kind has a canonical spelling.
func (k Kind) HasFixedSpelling() bool {
	_, ok := spellings[k]
	return ok
}

// LookupSpelling returns the kind whose canonical spelling is exactly s.
func LookupSpelling(s string) (Kind, bool) {
	k, ok := kindsBySpelling[s]
	return k, ok
}

// Position represents a line and column position in the source text.
// Both are 1-based; columns count runes.
type Position struct {
	Line int `json:"line" msgpack:"line"`
	Col  int `json:"col" msgpack:"col"`
}

// Span represents the start and end positions of a token. End is exclusive.
type Span struct {
	Start Position `json:"start" msgpack:"start"`
	End   Position `json:"end" msgpack:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// Token represents a single token from Venlyn source code.
type Token struct {
	Kind Kind   `json:"kind" msgpack:"kind"`
	Text string `json:"text" msgpack:"text"` // The source text the token was read from
	Span Span   `json:"span" msgpack:"span"`

	// Numeric token fields
	Value *int32 `json:"value,omitempty" msgpack:"value,omitempty"`
}

// NewToken creates a token of a fixed-spelling kind.
func NewToken(kind Kind, span Span) Token {
	spelling, _ := kind.Spelling()
	return Token{Kind: kind, Text: spelling, Span: span}
}

// NewIdToken creates an identifier token.
func NewIdToken(name string, span Span) Token {
	return Token{Kind: Id, Text: name, Span: span}
}

// NewNumericToken creates a numeric literal token. text is the literal as it
// appeared in the source.
func NewNumericToken(text string, value int32, span Span) Token {
	return Token{Kind: NumericalLiteral, Text: text, Span: span, Value: &value}
}

// Int returns the value of a numeric literal, or 0 for any other token.
func (t Token) Int() int32 {
	if t.Value == nil {
		return 0
	}
	return *t.Value
}

// Render returns source text that tokenizes back to this token.
func (t Token) Render() string {
	switch t.Kind {
	case Id:
		return t.Text
	case NumericalLiteral:
		return strconv.FormatInt(int64(t.Int()), 10)
	default:
		s, _ := t.Kind.Spelling()
		return s
	}
}

// String describes the token by kind and payload, ignoring its span,
// e.g. Let, Id("x") or NumericalLiteral(4).
func (t Token) String() string {
	switch t.Kind {
	case Id:
		return fmt.Sprintf("Id(%q)", t.Text)
	case NumericalLiteral:
		return fmt.Sprintf("NumericalLiteral(%d)", t.Int())
	default:
		return string(t.Kind)
	}
}

// IsValidIdentifier reports whether s matches [alpha_][alnum_]*.
func IsValidIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !isIdentifierStart(r) {
				return false
			}
		} else if !isIdentifierBody(r) {
			return false
		}
	}
	return s != ""
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierBody(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
