/*
Package lexmach implements a scanner adapter for lexmachine.

Grammars whose token sets consist of literals, keywords and a couple of
regex rules may scan via lexmachine's DFA instead of the full pattern
registry of package scanner. The adapter translates lexmachine tokens
into scanner.Tokens, so parsers do not notice the difference in backend.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/scanner"
)

// tracer traces with key 'grammatica.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer    *lexmachine.Lexer
	patterns map[int]*scanner.TokenPattern
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token names to their pattern ids. Further rules —
// e.g. regex rules — may be added through the init function.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{
		Lexer:    lexmachine.NewLexer(),
		patterns: make(map[int]*scanner.TokenPattern),
	}
	for name, id := range tokenIds {
		typ := scanner.Regexp
		if len(name) > 0 && !isIdentifier(name) {
			typ = scanner.Literal
		}
		adapter.patterns[id] = scanner.NewTokenPattern(id, name, typ, name)
	}
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func isIdentifier(s string) bool {
	for _, ch := range s {
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_') {
			return false
		}
	}
	return true
}

// Scanner creates a scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, adapter: lm, Error: logError}, nil
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// LMScanner wraps a lexmachine scanner and yields scanner.Tokens.
type LMScanner struct {
	scanner *lexmachine.Scanner
	adapter *LMAdapter
	Error   func(error)
}

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Next returns the next token, or (nil, nil) at the end of the input.
// Unconsumable input is reported to the error handler and skipped.
func (lms *LMScanner) Next() (*scanner.Token, error) {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return nil, nil
	}
	token := tok.(*lexmachine.Token)
	pattern := lms.adapter.patterns[token.Type]
	if pattern == nil {
		pattern = scanner.NewTokenPattern(token.Type, "?", scanner.Regexp, "")
		lms.adapter.patterns[token.Type] = pattern
	}
	return scanner.NewToken(pattern, string(token.Lexeme),
		token.StartLine, token.StartColumn,
		grammatica.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))}), nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a
// lexmachine token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
