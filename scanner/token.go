package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/grammatica"
)

// Token is one lexeme recognized by the tokenizer. Tokens know their
// pattern, their image (the matched text) and the source coordinates of
// their first character. When the tokenizer's token list is enabled,
// tokens additionally chain up in a doubly-linked list, including the
// ignored and error tokens that never reach the parser.
type Token struct {
	pattern    *TokenPattern
	image      string
	line, col  int
	span       grammatica.Span
	prev, next *Token
}

// NewToken creates a standalone token. The tokenizer builds its tokens
// internally; this constructor exists for scanner adapters which obtain
// lexemes from a different matching engine.
func NewToken(pattern *TokenPattern, image string, line, col int, span grammatica.Span) *Token {
	return &Token{
		pattern: pattern,
		image:   image,
		line:    line,
		col:     col,
		span:    span,
	}
}

// Pattern returns the token pattern which matched this token.
func (t *Token) Pattern() *TokenPattern {
	return t.pattern
}

// ID returns the pattern id of this token.
func (t *Token) ID() int {
	return t.pattern.ID()
}

// Name returns the pattern name of this token.
func (t *Token) Name() string {
	return t.pattern.Name()
}

// Image returns the matched text.
func (t *Token) Image() string {
	return t.image
}

// StartLine returns the line of the token's first character. The first
// line is 1.
func (t *Token) StartLine() int {
	return t.line
}

// StartColumn returns the column of the token's first character. The
// first column is 1.
func (t *Token) StartColumn() int {
	return t.col
}

// EndLine returns the line of the token's last character.
func (t *Token) EndLine() int {
	line, _ := t.endCoordinates()
	return line
}

// EndColumn returns the column of the token's last character.
func (t *Token) EndColumn() int {
	_, col := t.endCoordinates()
	return col
}

// endCoordinates derives the end position by scanning the image for
// newlines: every newline bumps the line; the end column counts from the
// character after the last newline.
func (t *Token) endCoordinates() (int, int) {
	image := []rune(t.image)
	newlines := 0
	afterLast := -1
	for i, ch := range image {
		if ch == '\n' {
			newlines++
			afterLast = i + 1
		}
	}
	if newlines == 0 {
		return t.line, t.col + len(image) - 1
	}
	return t.line + newlines, len(image) - afterLast
}

// Span returns the input positions covered by this token.
func (t *Token) Span() grammatica.Span {
	return t.span
}

// Prev returns the previous token in the token list, or nil if the token
// list is disabled or this is the first token.
func (t *Token) Prev() *Token {
	return t.prev
}

// Next returns the next token in the token list, or nil.
func (t *Token) Next() *Token {
	return t.next
}

func (t *Token) String() string {
	image := t.image
	if i := strings.IndexByte(image, '\n'); i >= 0 {
		image = image[:i] + "(...)"
	}
	return fmt.Sprintf("%s(%d): %q, line: %d, col: %d",
		t.pattern.Name(), t.pattern.ID(), image, t.line, t.col)
}
