package tokenizer

// CharStream reads runes from source text with one rune of lookahead and
// unlimited pushback. Pushed-back runes are returned before the rest of the
// source, in the order that makes "read, then push back what was read" a
// no-op.
type CharStream struct {
	source  []rune
	cursor  int
	pending []rune // Pushback buffer; the last element is the next rune returned
}

// NewCharStream creates a stream over input.
func NewCharStream(input string) *CharStream {
	return &CharStream{source: []rune(input)}
}

// Peek returns the rune that the next call to Next would return, without
// consuming it. The second result is false at end of input.
func (s *CharStream) Peek() (rune, bool) {
	if n := len(s.pending); n > 0 {
		return s.pending[n-1], true
	}
	if s.cursor < len(s.source) {
		return s.source[s.cursor], true
	}
	return 0, false
}

// Next returns and consumes the next rune.
func (s *CharStream) Next() (rune, bool) {
	if n := len(s.pending); n > 0 {
		r := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return r, true
	}
	if s.cursor < len(s.source) {
		r := s.source[s.cursor]
		s.cursor++
		return r, true
	}
	return 0, false
}

// PushFront makes r the very next rune returned, ahead of anything pending.
func (s *CharStream) PushFront(r rune) {
	s.pending = append(s.pending, r)
}

// PushStringFront makes the runes of str the next runes returned, in str's
// left-to-right order.
func (s *CharStream) PushStringFront(str string) {
	runes := []rune(str)
	for i := len(runes) - 1; i >= 0; i-- {
		s.PushFront(runes[i])
	}
}

// Offset returns the rune offset of the next rune in the source text.
// It is only meaningful while every pushed-back rune is one that was
// previously read from this stream.
func (s *CharStream) Offset() int {
	return s.cursor - len(s.pending)
}

// AtEnd reports whether the stream is exhausted.
func (s *CharStream) AtEnd() bool {
	_, ok := s.Peek()
	return !ok
}
