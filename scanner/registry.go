package scanner

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/cbuf"
	"github.com/npillmayer/grammatica/rex"
)

// registry holds all token patterns of a tokenizer and selects the
// winning pattern at a buffer position. Literal patterns share one
// stringDFA; regex patterns each carry their own matcher. Selection is
// longest match first, registration order second — registering order is
// therefore semantically significant.
type registry struct {
	ignoreCase bool
	dfa        *stringDFA
	regexps    []*regexpEntry
	byID       map[int]*TokenPattern
	seq        int
}

type regexpEntry struct {
	pattern *TokenPattern
	matcher *rex.Matcher
	leading rune // -1 if matches cannot be dispatched by first character
	seq     int
}

func newRegistry(ignoreCase bool) *registry {
	return &registry{
		ignoreCase: ignoreCase,
		dfa:        newStringDFA(ignoreCase),
		byID:       make(map[int]*TokenPattern),
	}
}

// add validates a pattern and installs it with the matcher for its kind.
func (r *registry) add(tp *TokenPattern) error {
	if _, ok := r.byID[tp.ID()]; ok {
		return grammatica.NewCreationError(tp.Name(),
			fmt.Sprintf("duplicate token pattern id %d", tp.ID()))
	}
	switch tp.Type() {
	case Literal:
		if tp.Pattern() == "" {
			return grammatica.NewCreationError(tp.Name(), "empty literal pattern")
		}
		r.dfa.insert(tp.Pattern(), tp, r.seq)
	case Regexp:
		var re *rex.Regexp
		var err error
		if r.ignoreCase {
			re, err = rex.CompileIgnoreCase(tp.Pattern())
		} else {
			re, err = rex.Compile(tp.Pattern())
		}
		if err != nil {
			return grammatica.NewCreationError(tp.Name(), err.Error())
		}
		leading := rune(-1)
		if prefix := re.Prefix(); prefix != "" {
			leading = []rune(prefix)[0]
		}
		r.regexps = append(r.regexps, &regexpEntry{
			pattern: tp,
			matcher: re.Matcher(),
			leading: leading,
			seq:     r.seq,
		})
	default:
		return grammatica.NewCreationError(tp.Name(), "unknown pattern type")
	}
	r.byID[tp.ID()] = tp
	r.seq++
	return nil
}

// pattern returns the registered pattern with the given id, or nil.
func (r *registry) pattern(id int) *TokenPattern {
	return r.byID[id]
}

// match selects the winning pattern at the buffer's current position.
// All candidate matchers run; the longest match wins and equal lengths
// resolve to the earliest registration. hitEOF reports whether any
// matcher ran out of input mid-pattern, i.e. whether more input might
// have produced a (longer) match.
func (r *registry) match(buf *cbuf.Buffer) (length int, pattern *TokenPattern, hitEOF bool) {
	bestLen, bestSeq := 0, -1
	var best *TokenPattern
	dfaLen, dfaPat, dfaSeq, dfaEOF := r.dfa.match(buf)
	if dfaPat != nil && dfaLen > 0 {
		bestLen, bestSeq, best = dfaLen, dfaSeq, dfaPat
	}
	hitEOF = dfaEOF
	next := buf.Peek(0)
	if next >= 0 && r.ignoreCase {
		next = int(unicode.ToLower(rune(next)))
	}
	for _, e := range r.regexps {
		if e.leading >= 0 && next >= 0 && rune(next) != e.leading {
			continue
		}
		l := e.matcher.Match(buf, 0)
		if e.matcher.MatchedEOF() {
			hitEOF = true
		}
		if l <= 0 {
			continue
		}
		if l > bestLen || (l == bestLen && (bestSeq < 0 || e.seq < bestSeq)) {
			bestLen, bestSeq, best = l, e.seq, e.pattern
		}
	}
	return bestLen, best, hitEOF
}
