package rex

import "fmt"

// ErrorCode classifies regex compilation errors.
type ErrorCode int

// Error codes for regex compilation. Every code carries the pattern and
// the zero-based offset where the error was detected.
const (
	UnexpectedCharacter ErrorCode = iota // character not valid at this point
	UnterminatedPattern                  // pattern ended inside a group, set or count
	UnsupportedSpecial                   // special character outside the supported subset
	UnsupportedEscape                    // escape sequence outside the supported subset
	InvalidRepeatCount                   // repetition bounds out of range
)

var codeMessages = map[ErrorCode]string{
	UnexpectedCharacter: "unexpected character",
	UnterminatedPattern: "unterminated pattern",
	UnsupportedSpecial:  "unsupported special character",
	UnsupportedEscape:   "unsupported escape character",
	InvalidRepeatCount:  "invalid repeat count",
}

// SyntaxError is a regex compilation error. Compilation errors are fatal:
// the token pattern carrying the regex is rejected.
type SyntaxError struct {
	Code    ErrorCode // error classification
	Pattern string    // the complete pattern string
	Offset  int       // zero-based offset of the error within Pattern
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in pattern %q at offset %d",
		codeMessages[e.Code], e.Pattern, e.Offset)
}

func (c *compiler) errorAt(code ErrorCode, offset int) *SyntaxError {
	return &SyntaxError{
		Code:    code,
		Pattern: string(c.pattern),
		Offset:  offset,
	}
}
