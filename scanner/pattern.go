package scanner

import "fmt"

// PatternType distinguishes the two kinds of token patterns.
type PatternType int8

// Token pattern kinds: a literal string matched verbatim, or a regular
// expression (see package rex for the accepted notation).
const (
	Literal PatternType = iota
	Regexp
)

// TokenPattern is a rule for recognizing a lexeme. Patterns carry a
// user-assigned id, unique within a tokenizer, and optional ignore/error
// flags: ignored tokens are consumed but not emitted, error tokens match
// but always raise an invalid-token error with the pattern's message.
//
// A pattern is mutable until it is registered with a tokenizer and must
// not be modified afterwards.
type TokenPattern struct {
	id      int
	name    string
	typ     PatternType
	pattern string
	ignore  bool
	isError bool
	errMsg  string
}

// NewTokenPattern creates a token pattern. For a Literal pattern, the
// pattern string is the lexeme itself; for a Regexp pattern it is a
// regular expression.
func NewTokenPattern(id int, name string, typ PatternType, pattern string) *TokenPattern {
	return &TokenPattern{
		id:      id,
		name:    name,
		typ:     typ,
		pattern: pattern,
	}
}

// ID returns the unique pattern id.
func (tp *TokenPattern) ID() int {
	return tp.id
}

// Name returns the pattern name.
func (tp *TokenPattern) Name() string {
	return tp.name
}

// Type returns the pattern kind, Literal or Regexp.
func (tp *TokenPattern) Type() PatternType {
	return tp.typ
}

// Pattern returns the pattern string.
func (tp *TokenPattern) Pattern() string {
	return tp.pattern
}

// SetIgnore marks this pattern as ignored: matches are consumed but not
// emitted to the parser.
func (tp *TokenPattern) SetIgnore() *TokenPattern {
	tp.ignore = true
	return tp
}

// Ignore returns true if this pattern is ignored.
func (tp *TokenPattern) Ignore() bool {
	return tp.ignore
}

// SetError marks this pattern as an error pattern: matches raise an
// invalid-token error carrying msg.
func (tp *TokenPattern) SetError(msg string) *TokenPattern {
	tp.isError = true
	tp.errMsg = msg
	return tp
}

// IsError returns true if this pattern is an error pattern.
func (tp *TokenPattern) IsError() bool {
	return tp.isError
}

// ErrorMessage returns the message raised when an error pattern matches.
func (tp *TokenPattern) ErrorMessage() string {
	return tp.errMsg
}

func (tp *TokenPattern) String() string {
	kind := "string"
	if tp.typ == Regexp {
		kind = "regexp"
	}
	return fmt.Sprintf("%s(%d) = <%s> %q", tp.name, tp.id, kind, tp.pattern)
}
