package tokenizer

import (
	"strings"
	"unicode"
)

// skipWhitespace discards whitespace ahead of the next token.
func (t *Tokenizer) skipWhitespace() {
	for {
		r, ok := t.stream.Peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		t.stream.Next()
	}
}

// matchNumeric attempts to match -?[0-9]+. A '-' that is not immediately
// followed by a digit is left in the stream for the lex tree.
func (t *Tokenizer) matchNumeric() (Token, bool) {
	r, ok := t.stream.Peek()
	if !ok {
		return Token{}, false
	}

	negative := false
	if r == '-' {
		t.stream.Next()
		next, ok := t.stream.Peek()
		if !ok || !isDecimalDigit(next) {
			t.stream.PushFront('-')
			return Token{}, false
		}
		negative = true
	} else if !isDecimalDigit(r) {
		return Token{}, false
	}

	var text strings.Builder
	if negative {
		text.WriteRune('-')
	}

	// Overflow wraps, as int32 arithmetic does.
	var value int32
	for {
		r, ok := t.stream.Next()
		if !ok {
			break
		}
		if !isDecimalDigit(r) {
			t.stream.PushFront(r)
			break
		}
		text.WriteRune(r)
		value = value*10 + (r - '0')
	}
	if negative {
		value = -value
	}

	return NewNumericToken(text.String(), value, Span{}), true
}

// matchLexTree walks the lex tree from the root and returns the kind of the
// deepest resolved node reached. Every character read after that node is
// pushed back, so a failed attempt at a longer token leaves the stream as
// it found it.
func (t *Tokenizer) matchLexTree() (Kind, bool) {
	node := t.tree
	var best Kind
	found := false
	var unconfirmed []rune // Read since the last resolved node

	for {
		if kind, ok := node.Kind(); ok {
			best, found = kind, true
			unconfirmed = unconfirmed[:0]
		}
		if !node.HasChildren() {
			break
		}

		child, suffix := t.readSuffix(node)
		unconfirmed = append(unconfirmed, suffix...)
		if child == nil {
			break
		}
		node = child
	}

	t.stream.PushStringFront(string(unconfirmed))
	return best, found
}

// readSuffix reads characters until they spell one of node's child keys.
// It stops without consuming at whitespace or end of input, and gives up
// once the characters read cannot begin any key. The characters read are
// returned in both cases.
func (t *Tokenizer) readSuffix(node *LexNode) (*LexNode, []rune) {
	var suffix []rune
	for {
		r, ok := t.stream.Peek()
		if !ok || unicode.IsSpace(r) {
			return nil, suffix
		}
		t.stream.Next()
		suffix = append(suffix, r)

		key := string(suffix)
		if child, ok := node.Child(key); ok {
			return child, suffix
		}
		if len(suffix) >= node.MaxSuffixLen() || !node.extendsToChild(key) {
			return nil, suffix
		}
	}
}

// matchIdentifier attempts to match [alpha_][alnum_]*.
func (t *Tokenizer) matchIdentifier() (string, bool) {
	r, ok := t.stream.Peek()
	if !ok || !isIdentifierStart(r) {
		return "", false
	}

	var name strings.Builder
	for {
		r, ok := t.stream.Next()
		if !ok {
			break
		}
		if !isIdentifierBody(r) {
			t.stream.PushFront(r)
			break
		}
		name.WriteRune(r)
	}
	return name.String(), true
}
