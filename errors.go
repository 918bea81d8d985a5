package grammatica

import (
	"bytes"
	"fmt"
)

// --- Parse errors -----------------------------------------------------

// ErrorCode classifies errors occurring while tokenizing or parsing input.
type ErrorCode int

// Error codes for parse errors. Fatal codes terminate a parse run; the
// remaining ones are logged and parsing continues after recovery.
const (
	Internal            ErrorCode = iota // unexpected internal condition
	IOFailure                            // reading the character source failed
	UnexpectedCharacter                  // no token pattern matched
	UnexpectedEOF                        // input ended inside a token or production
	UnexpectedToken                      // token outside every look-ahead set
	InvalidToken                         // a token pattern flagged as error matched
	Analysis                             // an analyzer callback failed
)

var errorMessages = map[ErrorCode]string{
	Internal:            "internal error",
	IOFailure:           "I/O error",
	UnexpectedCharacter: "unexpected character",
	UnexpectedEOF:       "unexpected end of input",
	UnexpectedToken:     "unexpected token",
	InvalidToken:        "invalid token",
	Analysis:            "analysis error",
}

// Message returns the generic message for an error code.
func (code ErrorCode) Message() string {
	return errorMessages[code]
}

// IsFatal returns true for error codes which terminate a parse run.
func (code ErrorCode) IsFatal() bool {
	return code == Internal || code == IOFailure || code == UnexpectedEOF ||
		code == Analysis
}

// ParseError is an error occurring while tokenizing or parsing input.
// Non-fatal parse errors accumulate in the parser's error log; fatal ones
// terminate the log.
type ParseError struct {
	Code   ErrorCode // error classification
	Info   string    // detail, e.g. the offending character or token
	Line   int       // line where the error occurred, first line is 1
	Column int       // column where the error occurred, first column is 1
}

// NewParseError creates a parse error at a source position.
func NewParseError(code ErrorCode, info string, line, col int) *ParseError {
	return &ParseError{
		Code:   code,
		Info:   info,
		Line:   line,
		Column: col,
	}
}

func (e *ParseError) Error() string {
	var b bytes.Buffer
	b.WriteString(e.Code.Message())
	if e.Info != "" {
		b.WriteString(": ")
		b.WriteString(e.Info)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d, col %d", e.Line, e.Column)
	}
	return b.String()
}

// --- Parser log -------------------------------------------------------

// ParserLogError collects all parse errors of a parse run, ordered by
// source position of occurrence. A parse returning a non-empty log fails
// with the log as its error.
type ParserLogError struct {
	errors []*ParseError
}

// Add appends a parse error to the log.
func (log *ParserLogError) Add(e *ParseError) {
	log.errors = append(log.errors, e)
}

// Count returns the number of errors in the log.
func (log *ParserLogError) Count() int {
	return len(log.errors)
}

// Err returns error number i, starting at 0.
func (log *ParserLogError) Err(i int) *ParseError {
	return log.errors[i]
}

func (log *ParserLogError) Error() string {
	if len(log.errors) == 0 {
		return "no errors"
	}
	var b bytes.Buffer
	for i, e := range log.errors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// --- Grammar construction errors --------------------------------------

// CreationError is an error occurring while a tokenizer or parser is set
// up: an invalid or duplicate pattern, a left-recursive or ambiguous
// grammar. Creation errors are fatal; the grammar is rejected.
type CreationError struct {
	Name string // name of the pattern or production concerned, if any
	Info string // detail
}

// NewCreationError creates a grammar construction error.
func NewCreationError(name, info string) *CreationError {
	return &CreationError{Name: name, Info: info}
}

func (e *CreationError) Error() string {
	if e.Name == "" {
		return "parser creation failed: " + e.Info
	}
	return fmt.Sprintf("parser creation failed: %s: %s", e.Name, e.Info)
}
