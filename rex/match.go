package rex

import (
	"sort"
	"unicode"

	"github.com/npillmayer/grammatica/cbuf"
)

// Matcher runs a compiled Regexp against a character buffer. Matchers
// hold the per-match state of the element tree (repetition caches), so a
// matcher must not be used by more than one goroutine at a time; create
// one matcher per consumer with Regexp.Matcher.
type Matcher struct {
	elem        *element
	ignoreCase  bool
	buf         *cbuf.Buffer
	endOfString bool
}

// Match matches the regexp against buf, beginning at the given offset
// after the buffer's current position. It returns the length of the most
// preferred match, or -1 if the regexp does not match there. For a greedy
// regexp the most preferred match is the longest one.
func (m *Matcher) Match(buf *cbuf.Buffer, start int) int {
	m.buf = buf
	m.endOfString = false
	return m.match(m.elem, start, 0)
}

// MatchedEOF returns true if the last Match attempt peeked past the end
// of the input. The tokenizer uses this to distinguish "cannot match"
// from "could match, given more input".
func (m *Matcher) MatchedEOF() bool {
	return m.endOfString
}

// peek reads one character of input, folding case if required. A result
// of -1 means end of input and sets the sticky end-of-string flag.
func (m *Matcher) peek(offset int) int {
	c := m.buf.Peek(offset)
	if c < 0 {
		m.endOfString = true
		return -1
	}
	if m.ignoreCase {
		c = int(unicode.ToLower(rune(c)))
	}
	return c
}

// match enumerates the match lengths of an element at a start offset, in
// the element's preference order, and returns the skip-th one (zero
// based), or -1 when fewer than skip+1 matches exist. Backtracking in
// composite elements works entirely through the skip parameter: a
// concatenation walks the Cartesian product of its operands' match
// enumerations, an alternation chains them.
func (m *Matcher) match(e *element, start, skip int) int {
	switch e.op {
	case opString:
		if skip != 0 {
			return -1
		}
		for i, ch := range e.lit {
			if m.peek(start+i) != int(ch) {
				return -1
			}
		}
		return len(e.lit)
	case opSet:
		if skip != 0 {
			return -1
		}
		c := m.peek(start)
		if c < 0 {
			return -1
		}
		if e.set.Matches(rune(c)) {
			return 1
		}
		return -1
	case opConcat:
		length1, length2 := -1, -1
		skip1, skip2 := 0, 0
		for skip >= 0 {
			length1 = m.match(e.left, start, skip1)
			if length1 < 0 {
				return -1
			}
			length2 = m.match(e.right, start+length1, skip2)
			if length2 < 0 {
				skip1++
				skip2 = 0
			} else {
				skip--
				skip2++
			}
		}
		return length1 + length2
	case opAlt:
		skip1, skip2 := 0, 0
		for {
			length := m.match(e.left, start, skip1)
			if length < 0 {
				break
			}
			if skip == 0 {
				return length
			}
			skip--
			skip1++
		}
		for {
			length := m.match(e.right, start, skip2)
			if length < 0 {
				return -1
			}
			if skip == 0 {
				return length
			}
			skip--
			skip2++
		}
	case opRepeat:
		return m.matchRepeat(e, start, skip)
	}
	return -1
}

// matchRepeat indexes into the set of reachable repetition totals. The
// set is computed once per start position and cached on the (cloned)
// element; a fresh match attempt (skip == 0) invalidates the cache.
func (m *Matcher) matchRepeat(e *element, start, skip int) int {
	if skip == 0 || !e.cvalid || e.cstart != start {
		e.lengths = m.repeatLengths(e, start)
		e.cstart = start
		e.cvalid = true
	}
	n := len(e.lengths)
	switch e.mode {
	case Possessive:
		// a possessive repetition only ever yields the greedy maximum
		if skip != 0 || n == 0 {
			return -1
		}
		return e.lengths[n-1]
	case Greedy:
		if skip >= n {
			return -1
		}
		return e.lengths[n-1-skip]
	case Reluctant:
		if skip >= n {
			return -1
		}
		return e.lengths[skip]
	}
	return -1
}

// repeatLengths computes all total match lengths reachable by running the
// child between min and max times from the start offset. The walk is
// breadth-first over the iteration count, so no recursion depth depends
// on the input length; a 4k-character repetition enumerates in one pass.
func (m *Matcher) repeatLengths(e *element, start int) []int {
	seen := map[int]bool{0: true}   // totals reached with any count
	valid := map[int]bool{}         // totals reached with a count within bounds
	frontier := map[int]bool{0: true} // totals with exactly c child matches
	if e.min == 0 {
		valid[0] = true
	}
	for c := 1; c <= e.max; c++ {
		next := make(map[int]bool)
		for total := range frontier {
			for sk := 0; ; sk++ {
				length := m.match(e.left, start+total, sk)
				if length < 0 {
					break
				}
				next[total+length] = true
			}
		}
		if len(next) == 0 {
			break
		}
		grew := false
		for total := range next {
			if !seen[total] {
				seen[total] = true
				grew = true
			}
		}
		if c >= e.min {
			for total := range next {
				valid[total] = true
			}
			// totals are closed under further iterations once nothing
			// new shows up, so the enumeration is complete
			if !grew {
				break
			}
		}
		frontier = next
	}
	totals := make([]int, 0, len(valid))
	for total := range valid {
		totals = append(totals, total)
	}
	sort.Ints(totals)
	return totals
}
