package parser

import (
	"bytes"
	"fmt"
	"math"

	"github.com/cnf/structhash"

	"github.com/npillmayer/grammatica"
)

// Unbounded is the maximum occurrence count of an element which may
// repeat indefinitely.
const Unbounded = math.MaxInt32

// ProductionPattern is a named grammar production: an ordered list of
// alternatives. Patterns are mutable until the parser holding them is
// prepared; preparation computes and stores the look-ahead sets and
// freezes the pattern.
//
// A synthetic production does not appear in parse trees: its children are
// spliced directly into the parent node's children at the point where the
// production node would have appeared.
type ProductionPattern struct {
	id           int
	name         string
	synthetic    bool
	alternatives []*ProductionPatternAlternative
	defaultAlt   int
	lookAhead    *LookaheadSet // union over the alternatives, set by prepare
	depth        int           // look-ahead depth k settled on for this production
	frozen       bool

	// grammar-wide properties, computed during preparation
	leftRecursive  bool
	rightRecursive bool
	matchesEmpty   bool
}

// NewProductionPattern creates a production pattern without alternatives.
func NewProductionPattern(id int, name string) *ProductionPattern {
	return &ProductionPattern{
		id:         id,
		name:       name,
		defaultAlt: -1,
	}
}

// ID returns the unique pattern id.
func (pp *ProductionPattern) ID() int {
	return pp.id
}

// Name returns the production name.
func (pp *ProductionPattern) Name() string {
	return pp.name
}

// SetSynthetic marks this production as synthetic.
func (pp *ProductionPattern) SetSynthetic() *ProductionPattern {
	pp.synthetic = true
	return pp
}

// IsSynthetic returns true if this production is synthetic.
func (pp *ProductionPattern) IsSynthetic() bool {
	return pp.synthetic
}

// SetDefaultAlternative declares alternative number i (in order of
// addition) the fallback: it is chosen whenever no alternative's
// look-ahead set matches the upcoming tokens.
func (pp *ProductionPattern) SetDefaultAlternative(i int) {
	pp.defaultAlt = i
}

// DefaultAlternative returns the index of the fallback alternative, or
// -1 if none is declared.
func (pp *ProductionPattern) DefaultAlternative() int {
	return pp.defaultAlt
}

// Alternatives returns the number of alternatives.
func (pp *ProductionPattern) Alternatives() int {
	return len(pp.alternatives)
}

// Alternative returns alternative number i.
func (pp *ProductionPattern) Alternative(i int) *ProductionPatternAlternative {
	return pp.alternatives[i]
}

// LookAhead returns the look-ahead set predicting entry into this
// production. It is nil until the parser has been prepared.
func (pp *ProductionPattern) LookAhead() *LookaheadSet {
	return pp.lookAhead
}

// IsLeftRecursive returns true if this production can derive itself as
// its own leftmost symbol. Computed during preparation.
func (pp *ProductionPattern) IsLeftRecursive() bool {
	return pp.leftRecursive
}

// IsRightRecursive returns true if this production can derive itself as
// its own rightmost symbol. Computed during preparation.
func (pp *ProductionPattern) IsRightRecursive() bool {
	return pp.rightRecursive
}

// MatchesEmpty returns true if some alternative of this production can
// match the empty token sequence. Computed during preparation; such
// productions are rejected.
func (pp *ProductionPattern) MatchesEmpty() bool {
	return pp.matchesEmpty
}

// AddAlternative appends an alternative. Byte-identical duplicates of an
// existing alternative are rejected, as is any change after preparation.
func (pp *ProductionPattern) AddAlternative(alt *ProductionPatternAlternative) error {
	if pp.frozen {
		return grammatica.NewCreationError(pp.name, "pattern is frozen")
	}
	sig := alt.signature()
	for _, other := range pp.alternatives {
		if other.signature() == sig {
			return grammatica.NewCreationError(pp.name, "duplicate alternative")
		}
	}
	alt.pattern = pp
	pp.alternatives = append(pp.alternatives, alt)
	return nil
}

func (pp *ProductionPattern) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s(%d) =", pp.name, pp.id)
	for i, alt := range pp.alternatives {
		if i > 0 {
			b.WriteString(" |")
		}
		b.WriteString(alt.String())
	}
	return b.String()
}

// --- Alternatives -----------------------------------------------------

// ProductionPatternAlternative is one right-hand side of a production:
// an ordered sequence of elements.
type ProductionPatternAlternative struct {
	pattern   *ProductionPattern
	elements  []*ProductionPatternElement
	lookAhead *LookaheadSet // predictive set for this alternative, set by prepare
}

// NewAlternative creates an empty alternative.
func NewAlternative() *ProductionPatternAlternative {
	return &ProductionPatternAlternative{}
}

// AddToken appends a token element with occurrence bounds [min, max].
// Use Unbounded for an open upper bound.
func (alt *ProductionPatternAlternative) AddToken(id, min, max int) *ProductionPatternAlternative {
	alt.elements = append(alt.elements, &ProductionPatternElement{
		token: true,
		id:    id,
		min:   min,
		max:   max,
	})
	return alt
}

// AddProduction appends a production element with occurrence bounds
// [min, max].
func (alt *ProductionPatternAlternative) AddProduction(id, min, max int) *ProductionPatternAlternative {
	alt.elements = append(alt.elements, &ProductionPatternElement{
		token: false,
		id:    id,
		min:   min,
		max:   max,
	})
	return alt
}

// Elements returns the number of elements.
func (alt *ProductionPatternAlternative) Elements() int {
	return len(alt.elements)
}

// Element returns element number i.
func (alt *ProductionPatternAlternative) Element(i int) *ProductionPatternElement {
	return alt.elements[i]
}

// LookAhead returns the predictive set of this alternative. It is nil
// until the parser has been prepared.
func (alt *ProductionPatternAlternative) LookAhead() *LookaheadSet {
	return alt.lookAhead
}

// signature hashes the element sequence, for duplicate detection.
func (alt *ProductionPatternAlternative) signature() string {
	type elemSig struct {
		Token    bool
		ID       int
		Min, Max int
	}
	sigs := make([]elemSig, len(alt.elements))
	for i, e := range alt.elements {
		sigs[i] = elemSig{Token: e.token, ID: e.id, Min: e.min, Max: e.max}
	}
	hash, err := structhash.Hash(struct{ Elements []elemSig }{sigs}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return hash
}

func (alt *ProductionPatternAlternative) String() string {
	var b bytes.Buffer
	for _, e := range alt.elements {
		b.WriteString(" ")
		b.WriteString(e.String())
	}
	return b.String()
}

// --- Elements ---------------------------------------------------------

// ProductionPatternElement is one element of an alternative: a reference
// to a token or production pattern, with occurrence bounds.
type ProductionPatternElement struct {
	token    bool
	id       int
	min, max int

	// look-ahead sets for repetition decisions, set by prepare:
	// continuation predicts one more occurrence, follow predicts the exit
	lookAhead *LookaheadSet
	follow    *LookaheadSet
}

// ID returns the referenced pattern id.
func (e *ProductionPatternElement) ID() int {
	return e.id
}

// IsToken returns true if this element references a token pattern.
func (e *ProductionPatternElement) IsToken() bool {
	return e.token
}

// IsProduction returns true if this element references a production
// pattern.
func (e *ProductionPatternElement) IsProduction() bool {
	return !e.token
}

// Min returns the minimum occurrence count.
func (e *ProductionPatternElement) Min() int {
	return e.min
}

// Max returns the maximum occurrence count.
func (e *ProductionPatternElement) Max() int {
	return e.max
}

// LookAhead returns the continuation set used to decide whether to enter
// another occurrence of a repeating element. It is nil until the parser
// has been prepared.
func (e *ProductionPatternElement) LookAhead() *LookaheadSet {
	return e.lookAhead
}

func (e *ProductionPatternElement) String() string {
	kind := "P"
	if e.token {
		kind = "T"
	}
	if e.min == 1 && e.max == 1 {
		return fmt.Sprintf("%s%d", kind, e.id)
	}
	if e.max == Unbounded {
		return fmt.Sprintf("%s%d{%d,}", kind, e.id, e.min)
	}
	return fmt.Sprintf("%s%d{%d,%d}", kind, e.id, e.min, e.max)
}
