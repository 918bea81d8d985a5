/*
Package rex implements the regular-expression engine behind regex token
patterns.

A pattern string is compiled into a tree of elements: literal strings,
character sets, concatenations, alternations and repetitions. Repetitions
come in three flavours: greedy (prefer the longest match), reluctant
(prefer the shortest) and possessive (take the longest, never give it
back). Matching runs directly against a look-ahead character buffer
(package cbuf), so a token can be recognized without the input ever being
materialized as a string.

The engine is deliberately small. It recognizes the subset of regex
notation useful for token patterns; anchors and capture groups are not
supported. For the exact notation accepted, see Compile.

Usage

	re, err := rex.Compile("[0-9]+")
	if err != nil { … }
	m := re.Matcher()
	buf := cbuf.New(strings.NewReader("4711 fliers"))
	length := m.Match(buf, 0)   // 4

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.rex'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.rex")
}

// Regexp is a compiled regular expression. A Regexp is immutable and may
// be shared; matching state lives in Matchers created from it.
type Regexp struct {
	pattern    string
	ignoreCase bool
	elem       *element
}

// Compile parses a pattern into a Regexp. Accepted notation:
//
//	Expr     = Term ('|' Expr)?
//	Term     = Fact+
//	Fact     = Atom Modifier?
//	Atom     = '.' | '(' Expr ')' | '[' Set ']' | Char
//	Modifier = ('?' | '*' | '+' | '{' N (',' N?)? '}') ('?' | '+')?
//
// A '?' suffix on a modifier makes the repetition reluctant, a '+'
// suffix makes it possessive. Supported escapes are \t \n \r \f \a \e,
// octal \0nnn, hex \xhh and \uhhhh, the classes \d \D \s \S \w \W, and
// backslash before any non-letter for the literal character. The anchors
// '^' and '$' are not supported and rejected.
func Compile(pattern string) (*Regexp, error) {
	return compileRegexp(pattern, false)
}

// CompileIgnoreCase is like Compile, but the resulting Regexp matches
// case-insensitively: literal characters and character-set members are
// normalized to lower case now, input characters at match time.
func CompileIgnoreCase(pattern string) (*Regexp, error) {
	return compileRegexp(pattern, true)
}

func compileRegexp(pattern string, ignoreCase bool) (*Regexp, error) {
	c := &compiler{pattern: []rune(pattern), ignoreCase: ignoreCase}
	elem, err := c.compile()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("compiled regexp /%s/ to %s", pattern, elem)
	return &Regexp{
		pattern:    pattern,
		ignoreCase: ignoreCase,
		elem:       elem,
	}, nil
}

// Pattern returns the pattern string this Regexp was compiled from.
func (re *Regexp) Pattern() string {
	return re.pattern
}

// IgnoreCase returns true if this Regexp matches case-insensitively.
func (re *Regexp) IgnoreCase() bool {
	return re.ignoreCase
}

// Matcher creates a matcher for this Regexp. Stateful elements of the
// compiled tree (repetitions cache their match lengths) are cloned, so
// every matcher owns its state and distinct matchers may run
// concurrently. A single matcher must not be shared between goroutines.
func (re *Regexp) Matcher() *Matcher {
	return &Matcher{
		elem:       re.elem.clone(),
		ignoreCase: re.ignoreCase,
	}
}

func (re *Regexp) String() string {
	return re.elem.String()
}

// Prefix returns a literal string every match of this Regexp must start
// with, or "" if no such prefix is known. The tokenizer uses it to
// dispatch patterns by their first input character.
func (re *Regexp) Prefix() string {
	return string(prefixOf(re.elem))
}

func prefixOf(e *element) []rune {
	switch e.op {
	case opString:
		return e.lit
	case opConcat:
		return prefixOf(e.left)
	case opRepeat:
		if e.min > 0 {
			return prefixOf(e.left)
		}
	case opAlt:
		l, r := prefixOf(e.left), prefixOf(e.right)
		n := 0
		for n < len(l) && n < len(r) && l[n] == r[n] {
			n++
		}
		return l[:n]
	}
	return nil
}
