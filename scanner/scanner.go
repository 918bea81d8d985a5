/*
Package scanner implements token patterns and the tokenizer.

A Tokenizer turns a character stream into a stream of Tokens, driven by
registered TokenPatterns. Literal patterns are matched by a shared DFA
(a prefix trie with binary-search-tree branching), regex patterns by the
engine of package rex. At every position all candidate patterns run and
the longest match wins; ties resolve to the pattern registered first.

Patterns may be flagged as ignored (matched but not emitted, the typical
whitespace/comment case) or as error patterns (matched, but reported as
an invalid-token error carrying the pattern's message).

Usage

	tz := scanner.New(strings.NewReader("12 keyword"))
	tz.AddPattern(scanner.NewTokenPattern(1, "NUMBER", scanner.Regexp, "[0-9]+"))
	tz.AddPattern(scanner.NewTokenPattern(2, "KEYWORD", scanner.Literal, "keyword"))
	tz.AddPattern(scanner.NewTokenPattern(3, "WS", scanner.Regexp, "[ \t\n]+").SetIgnore())
	for {
	    token, err := tz.Next()
	    …
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/cbuf"
)

// tracer traces with key 'grammatica.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.scanner")
}

// Tokenizer reads tokens from a character stream. Create one with New,
// register patterns with AddPattern, then pull tokens with Next. A
// tokenizer is not safe for concurrent use.
type Tokenizer struct {
	reg          *registry
	buf          *cbuf.Buffer
	line, col    int
	useTokenList bool
	tokens       *arraylist.List // all tokens in order, incl. ignored/error ones
	last         *Token          // tail of the doubly-linked token list
}

// Option configures a tokenizer.
type Option func(*Tokenizer)

// IgnoreCase makes all patterns of the tokenizer match
// case-insensitively. The flag applies to patterns registered afterwards,
// so it has to be given at construction time.
func IgnoreCase(b bool) Option {
	return func(tz *Tokenizer) {
		tz.reg.ignoreCase = b
		tz.reg.dfa.ignoreCase = b
	}
}

// UseTokenList enables the doubly-linked token list. With the list
// enabled, every token — including ignored and error tokens — is
// retained and chained via Token.Prev/Token.Next. Off by default.
func UseTokenList(b bool) Option {
	return func(tz *Tokenizer) {
		tz.useTokenList = b
	}
}

// New creates a tokenizer reading from input.
func New(input io.RuneReader, opts ...Option) *Tokenizer {
	tz := &Tokenizer{
		reg:  newRegistry(false),
		buf:  cbuf.New(input),
		line: 1,
		col:  1,
	}
	for _, opt := range opts {
		opt(tz)
	}
	if tz.useTokenList {
		tz.tokens = arraylist.New()
	}
	return tz
}

// AddPattern registers a token pattern. It fails with a creation error
// if the pattern does not compile or duplicates a registered id.
// Registration order matters: it breaks ties between equally long
// matches.
func (tz *Tokenizer) AddPattern(tp *TokenPattern) error {
	if err := tz.reg.add(tp); err != nil {
		tracer().Errorf("cannot add token pattern: %v", err)
		return err
	}
	tracer().Debugf("added token pattern %s", tp)
	return nil
}

// Pattern returns the registered token pattern with the given id, or
// nil.
func (tz *Tokenizer) Pattern(id int) *TokenPattern {
	return tz.reg.pattern(id)
}

// Position returns the current read position as a (line, column) pair.
// After the last token has been delivered this is the position just
// behind the consumed input.
func (tz *Tokenizer) Position() (int, int) {
	return tz.line, tz.col
}

// Reset replaces the input without discarding the registered patterns.
// The read position restarts at line 1, column 1 and the token list, if
// enabled, is cleared.
func (tz *Tokenizer) Reset(input io.RuneReader) {
	tz.buf = cbuf.New(input)
	tz.line, tz.col = 1, 1
	tz.last = nil
	if tz.useTokenList {
		tz.tokens = arraylist.New()
	}
}

// Tokens returns the first token of the doubly-linked token list, or nil
// if the list is disabled or empty.
func (tz *Tokenizer) Tokens() *Token {
	if tz.tokens == nil || tz.tokens.Empty() {
		return nil
	}
	first, _ := tz.tokens.Get(0)
	return first.(*Token)
}

// Next returns the next token, skipping over ignored ones, or (nil, nil)
// at the end of the input. Recoverable problems return a non-nil
// *grammatica.ParseError: an unexpected character (the offending
// character is skipped, so the next call resumes behind it) or a match
// of an error pattern. I/O failures are fatal.
func (tz *Tokenizer) Next() (*Token, error) {
	for {
		if err := tz.buf.Err(); err != nil {
			return nil, grammatica.NewParseError(grammatica.IOFailure,
				err.Error(), tz.line, tz.col)
		}
		line, col := tz.line, tz.col
		length, pattern, hitEOF := tz.reg.match(tz.buf)
		if pattern == nil {
			if err := tz.buf.Err(); err != nil {
				return nil, grammatica.NewParseError(grammatica.IOFailure,
					err.Error(), line, col)
			}
			if tz.buf.Peek(0) < 0 {
				return nil, nil // end of input
			}
			if hitEOF {
				// some pattern matched partially, then the input ran out;
				// drain the rest so that a follow-up call reports end of input
				for tz.buf.Peek(0) >= 0 {
					tz.advance(tz.buf.Read(1))
				}
				return nil, grammatica.NewParseError(grammatica.UnexpectedEOF,
					"", line, col)
			}
			offending := rune(tz.buf.Peek(0))
			tz.advance(tz.buf.Read(1))
			return nil, grammatica.NewParseError(grammatica.UnexpectedCharacter,
				fmt.Sprintf("'%c'", offending), line, col)
		}
		start := tz.buf.Pos()
		image := tz.buf.Read(length)
		tz.advance(image)
		token := &Token{
			pattern: pattern,
			image:   image,
			line:    line,
			col:     col,
			span:    grammatica.Span{uint64(start), uint64(start + length)},
		}
		tz.append(token)
		if pattern.IsError() {
			tracer().Debugf("error token %s", token)
			return nil, grammatica.NewParseError(grammatica.InvalidToken,
				pattern.ErrorMessage(), line, col)
		}
		if pattern.Ignore() {
			tracer().Debugf("ignored token %s", token)
			continue
		}
		tracer().Debugf("token %s", token)
		return token, nil
	}
}

// advance moves the line/column bookkeeping across consumed characters.
func (tz *Tokenizer) advance(image string) {
	for _, ch := range image {
		if ch == '\n' {
			tz.line++
			tz.col = 1
		} else {
			tz.col++
		}
	}
}

// append chains a token into the token list, if enabled.
func (tz *Tokenizer) append(token *Token) {
	if !tz.useTokenList {
		return
	}
	if tz.last != nil {
		tz.last.next = token
		token.prev = tz.last
	}
	tz.last = token
	tz.tokens.Add(token)
}
