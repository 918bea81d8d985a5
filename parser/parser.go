/*
Package parser implements a recursive-descent parser over runtime
grammars.

Clients register production patterns — ordered alternatives of token and
production references with occurrence bounds — and call Prepare. The
preparation step proves the grammar parseable: it rejects productions
matching the empty token sequence, left-recursive productions, and
productions whose alternatives cannot be told apart within a bounded
token look-ahead. For every alternative and every repeating element it
computes the predictive look-ahead set used at parse time.

Parse then drives the tokenizer, chooses alternatives by comparing the
upcoming tokens against the look-ahead sets, and builds a parse tree
(package tree) with source positions. Recoverable errors — unexpected
characters, invalid tokens, unexpected tokens — accumulate in an error
log; parsing resynchronizes on the follow set of the current production
and continues. If the log is non-empty at the end, Parse returns it as a
*grammatica.ParserLogError together with the (partial) tree.

Usage

	tz := scanner.New(input)
	…                              // add token patterns
	ps := parser.New(tz)
	expr := parser.NewProductionPattern(10, "Expression")
	alt := parser.NewAlternative().AddProduction(11, 1, 1).AddProduction(12, 0, 1)
	expr.AddAlternative(alt)
	ps.AddPattern(expr)
	…                              // add remaining productions
	if err := ps.Prepare(); err != nil { … }
	root, err := ps.Parse()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/scanner"
	"github.com/npillmayer/grammatica/tree"
)

// tracer traces with key 'grammatica.parser'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.parser")
}

// errFatal unwinds the recursive descent after a fatal error has been
// logged.
var errFatal = errors.New("fatal parse error")

// Parser is a recursive-descent parser over a runtime grammar. Create
// one with New, register production patterns with AddPattern, validate
// and freeze the grammar with Prepare, then call Parse. A parser is not
// safe for concurrent use.
type Parser struct {
	tz           *scanner.Tokenizer
	patterns     []*ProductionPattern // in registration order; [0] is the start
	byID         map[int]*ProductionPattern
	byName       map[string]*ProductionPattern
	maxLookahead int
	prepared     bool
	recovery     map[int]*treeset.Set // follow tokens per production, for resync

	// per-run state
	queue    []*scanner.Token // look-ahead token queue
	atEOF    bool
	log      *grammatica.ParserLogError
	fatal    error
	suppress bool // suppress cascading errors until a token is consumed
	consumed int  // tokens consumed or skipped, to guarantee progress
}

// Option configures a parser.
type Option func(*Parser)

// MaxLookahead sets the upper bound for the per-production look-ahead
// depth k. Preparation starts every production at k=1 and escalates only
// as far as needed to disambiguate it. Defaults to 3.
func MaxLookahead(k int) Option {
	return func(p *Parser) {
		if k > 0 {
			p.maxLookahead = k
		}
	}
}

// New creates a parser pulling tokens from the given tokenizer.
func New(tz *scanner.Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		tz:           tz,
		byID:         make(map[int]*ProductionPattern),
		byName:       make(map[string]*ProductionPattern),
		maxLookahead: 3,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tokenizer returns the tokenizer this parser reads from.
func (p *Parser) Tokenizer() *scanner.Tokenizer {
	return p.tz
}

// Pattern returns the production pattern with the given id, or nil.
func (p *Parser) Pattern(id int) *ProductionPattern {
	return p.byID[id]
}

// AddPattern registers a production pattern. The first pattern added
// becomes the start production. Duplicate ids or names are rejected.
func (p *Parser) AddPattern(pp *ProductionPattern) error {
	if p.prepared {
		return grammatica.NewCreationError(pp.name, "grammar is frozen")
	}
	if _, ok := p.byID[pp.id]; ok {
		return grammatica.NewCreationError(pp.name,
			fmt.Sprintf("duplicate production pattern id %d", pp.id))
	}
	if _, ok := p.byName[pp.name]; ok {
		return grammatica.NewCreationError(pp.name, "duplicate production pattern name")
	}
	p.patterns = append(p.patterns, pp)
	p.byID[pp.id] = pp
	p.byName[pp.name] = pp
	return nil
}

// Reset replaces the input without discarding the prepared grammar.
// Parsing afterwards behaves as if a fresh parser had been constructed
// over the new source.
func (p *Parser) Reset(input io.RuneReader) {
	p.tz.Reset(input)
	p.queue = nil
	p.atEOF = false
	p.fatal = nil
	p.suppress = false
	p.consumed = 0
	p.log = nil
}

// --- Preparation ------------------------------------------------------

// Prepare validates the grammar and computes all look-ahead sets. After
// a successful Prepare the grammar is frozen and the parser ready for
// Parse. Rejected are: missing or empty productions, dangling pattern
// references, productions matching the empty sequence, left recursion,
// and alternatives which stay ambiguous at the maximum look-ahead depth.
func (p *Parser) Prepare() error {
	if len(p.patterns) == 0 {
		return grammatica.NewCreationError("", "no production patterns")
	}
	if err := p.validateReferences(); err != nil {
		return err
	}
	a := &analysis{parser: p}
	a.computeEmpty()
	for _, pp := range p.patterns {
		if pp.matchesEmpty {
			return grammatica.NewCreationError(pp.name,
				"production matches an empty token sequence")
		}
	}
	a.computeRecursion()
	for _, pp := range p.patterns {
		if pp.leftRecursive {
			return grammatica.NewCreationError(pp.name, "left-recursive production")
		}
	}
	if err := p.computeLookaheads(a); err != nil {
		return err
	}
	p.buildRecoverySets(a)
	for _, pp := range p.patterns {
		pp.frozen = true
	}
	p.prepared = true
	tracer().Debugf("grammar with %d productions prepared", len(p.patterns))
	return nil
}

func (p *Parser) validateReferences() error {
	for _, pp := range p.patterns {
		if len(pp.alternatives) == 0 {
			return grammatica.NewCreationError(pp.name, "production has no alternatives")
		}
		if pp.defaultAlt >= len(pp.alternatives) {
			return grammatica.NewCreationError(pp.name, "default alternative out of range")
		}
		for _, alt := range pp.alternatives {
			for _, e := range alt.elements {
				if e.min < 0 || e.max < 1 || e.max < e.min {
					return grammatica.NewCreationError(pp.name,
						fmt.Sprintf("invalid occurrence bounds [%d,%d]", e.min, e.max))
				}
				if e.token {
					if p.tz.Pattern(e.id) == nil {
						return grammatica.NewCreationError(pp.name,
							fmt.Sprintf("reference to unknown token pattern %d", e.id))
					}
				} else if p.byID[e.id] == nil {
					return grammatica.NewCreationError(pp.name,
						fmt.Sprintf("reference to unknown production pattern %d", e.id))
				}
			}
		}
	}
	return nil
}

// computeLookaheads assigns predictive sets to every alternative and
// every repeating element. The look-ahead depth k is escalated per
// production, starting at 1, until the production's choices become
// unambiguous or the bound is hit.
func (p *Parser) computeLookaheads(a *analysis) error {
	resolved := make(map[int]bool)
	for k := 1; k <= p.maxLookahead; k++ {
		first := a.firstSets(k)
		follow := a.followSets(k, first)
		done := true
		for _, pp := range p.patterns {
			if resolved[pp.id] {
				continue
			}
			conflict := p.assignLookaheads(a, pp, k, first, follow)
			if conflict == nil {
				resolved[pp.id] = true
				pp.depth = k
				continue
			}
			if k == p.maxLookahead {
				return grammatica.NewCreationError(pp.name,
					fmt.Sprintf("inherent ambiguity: %s", conflict))
			}
			done = false
		}
		if done {
			break
		}
	}
	return nil
}

// assignLookaheads computes the look-ahead sets of one production at
// depth k. It returns nil on success, or a description of the remaining
// conflict.
func (p *Parser) assignLookaheads(a *analysis, pp *ProductionPattern, k int,
	first, follow map[int]*LookaheadSet) error {
	//
	las := make([]*LookaheadSet, len(pp.alternatives))
	for i, alt := range pp.alternatives {
		las[i] = a.firstOfElements(alt.elements, 0, k, first).concat(follow[pp.id])
	}
	if pp.defaultAlt >= 0 {
		// the declared fallback yields its overlap to every sibling
		for i := range pp.alternatives {
			if i != pp.defaultAlt {
				las[pp.defaultAlt].removeOverlap(las[i])
			}
		}
	}
	for i := 0; i < len(las); i++ {
		for j := i + 1; j < len(las); j++ {
			if i == pp.defaultAlt || j == pp.defaultAlt {
				continue
			}
			if las[i].intersects(las[j]) {
				return fmt.Errorf("alternatives %d and %d share look-ahead %s",
					i+1, j+1, las[i].intersection(las[j]))
			}
		}
	}
	for _, alt := range pp.alternatives {
		for pos, e := range alt.elements {
			if e.min == e.max {
				continue
			}
			one := a.firstOfElement(e, 1, 1, k, first)
			rest := a.restOfAlternative(alt, pos, k, first)
			cont := one.concat(rest).concat(follow[pp.id])
			exit := a.firstOfElements(alt.elements, pos+1, k, first).concat(follow[pp.id])
			if cont.intersects(exit) {
				return fmt.Errorf("repetition of %s is ambiguous against its follow %s",
					e, cont.intersection(exit))
			}
			e.lookAhead = cont
			e.follow = exit
		}
	}
	union := newLookaheadSet(k)
	for i, alt := range pp.alternatives {
		alt.lookAhead = las[i]
		union.addAll(las[i])
		tracer().Debugf("LA(%s alt %d) = %s", pp.name, i+1, las[i])
	}
	pp.lookAhead = union
	return nil
}

// buildRecoverySets derives, for every production, the set of tokens
// which may follow it. Error recovery skips input up to one of these.
func (p *Parser) buildRecoverySets(a *analysis) {
	first := a.firstSets(1)
	follow := a.followSets(1, first)
	p.recovery = make(map[int]*treeset.Set)
	for _, pp := range p.patterns {
		set := treeset.NewWithIntComparator()
		for _, tok := range follow[pp.id].initialTokens() {
			set.Add(tok)
		}
		p.recovery[pp.id] = set
	}
}

// --- Parsing ----------------------------------------------------------

// Parse parses the input of the tokenizer against the prepared grammar
// and returns the parse tree of the start production. All recoverable
// errors of the run accumulate in a log; if the log is non-empty, Parse
// returns it as a *grammatica.ParserLogError alongside the partial tree.
func (p *Parser) Parse() (tree.Node, error) {
	if !p.prepared {
		return nil, grammatica.NewCreationError("", "parser has not been prepared")
	}
	p.queue = nil
	p.atEOF = false
	p.fatal = nil
	p.suppress = false
	p.consumed = 0
	p.log = &grammatica.ParserLogError{}
	root := p.parseProduction(p.patterns[0])
	if p.fatal == nil {
		p.expectEndOfInput()
	}
	if p.log.Count() > 0 {
		return root, p.log
	}
	return root, nil
}

// expectEndOfInput reports trailing input after the start production and
// skips it.
func (p *Parser) expectEndOfInput() {
	token := p.peekToken(0)
	if token == nil || p.fatal != nil {
		return
	}
	if !p.suppress {
		p.log.Add(grammatica.NewParseError(grammatica.UnexpectedToken,
			fmt.Sprintf("%q, expected end of input", token.Image()),
			token.StartLine(), token.StartColumn()))
	}
	p.suppress = true
	for p.fatal == nil && p.peekToken(0) != nil {
		p.queue = p.queue[1:]
		p.consumed++
	}
}

// parseProduction recognizes one production and returns its (possibly
// partial) parse tree node.
func (p *Parser) parseProduction(pp *ProductionPattern) *tree.ProductionNode {
	node := tree.NewProductionNode(pp.id, pp.name, pp.synthetic)
	alt := p.chooseAlternative(pp)
	if alt == nil {
		if p.fatal != nil {
			return node
		}
		if p.tokenAt(0) == eofToken {
			line, col := p.tz.Position()
			p.log.Add(grammatica.NewParseError(grammatica.UnexpectedEOF, "", line, col))
			p.fatal = errFatal
			return node
		}
		p.reportUnexpectedToken(pp.lookAhead.initialTokens())
		p.recoverTo(pp)
		return node
	}
	tracer().Debugf("parsing %s", pp.name)
	for _, e := range alt.elements {
		if p.fatal != nil {
			return node
		}
		if !p.parseElement(node, pp, e) {
			break
		}
	}
	return node
}

// chooseAlternative selects the alternative whose look-ahead set
// contains the upcoming token prefix, falling back to the declared
// default alternative. Returns nil if no alternative applies.
func (p *Parser) chooseAlternative(pp *ProductionPattern) *ProductionPatternAlternative {
	for i, alt := range pp.alternatives {
		if i == pp.defaultAlt {
			continue
		}
		if alt.lookAhead.matches(p.tokenAt) {
			return alt
		}
	}
	if pp.defaultAlt >= 0 {
		return pp.alternatives[pp.defaultAlt]
	}
	return nil
}

// parseElement matches min..max occurrences of one element. It returns
// false if the production should be abandoned after an error.
func (p *Parser) parseElement(parent *tree.ProductionNode, pp *ProductionPattern,
	e *ProductionPatternElement) bool {
	//
	for count := 0; count < e.max; count++ {
		if count >= e.min && e.min != e.max {
			// repetition decision: continue only if one more occurrence
			// is predicted; the continuation set is disjoint from the
			// follow set, so greediness cannot starve the remainder
			if p.fatal != nil {
				return false
			}
			if !e.lookAhead.matches(p.tokenAt) {
				break
			}
		}
		if e.token {
			token := p.peekToken(0)
			if p.fatal != nil {
				return false
			}
			if token == nil {
				line, col := p.tz.Position()
				p.log.Add(grammatica.NewParseError(grammatica.UnexpectedEOF, "", line, col))
				p.fatal = errFatal
				return false
			}
			if token.ID() != e.id {
				p.reportUnexpectedToken([]int{e.id})
				p.recoverTo(pp)
				return false
			}
			p.queue = p.queue[1:]
			p.consumed++
			p.suppress = false
			parent.AddChild(tree.NewTokenNode(token))
		} else {
			before := p.consumed
			child := p.parseProduction(p.byID[e.id])
			if child.IsSynthetic() {
				parent.Adopt(child)
			} else {
				parent.AddChild(child)
			}
			if p.fatal != nil {
				return false
			}
			if p.consumed == before {
				// productions never match empty, so a child without any
				// consumption is an error path; stop repeating on it
				break
			}
		}
	}
	return true
}

// --- Token access -----------------------------------------------------

// peekToken returns the token i positions ahead, or nil at the end of
// the input. Recoverable tokenizer errors are logged here, in source
// order; fatal ones set the parser's fatal state.
func (p *Parser) peekToken(i int) *scanner.Token {
	for len(p.queue) <= i && !p.atEOF && p.fatal == nil {
		token, err := p.tz.Next()
		if err != nil {
			pe, ok := err.(*grammatica.ParseError)
			if !ok {
				p.fatal = err
				return nil
			}
			p.log.Add(pe)
			if pe.Code.IsFatal() {
				p.fatal = errFatal
				return nil
			}
			p.suppress = true
			continue
		}
		if token == nil {
			p.atEOF = true
			break
		}
		p.queue = append(p.queue, token)
	}
	if i < len(p.queue) {
		return p.queue[i]
	}
	return nil
}

// tokenAt returns the token id i positions ahead, or the end-of-input
// sentinel. This is the peek function driving look-ahead set matching.
func (p *Parser) tokenAt(i int) int {
	token := p.peekToken(i)
	if token == nil {
		return eofToken
	}
	return token.ID()
}

// --- Error handling and recovery --------------------------------------

// reportUnexpectedToken logs an unexpected-token error, unless error
// cascading is currently suppressed. Once an error has been reported,
// further ones are suppressed until a token is successfully consumed.
func (p *Parser) reportUnexpectedToken(expected []int) {
	token := p.peekToken(0)
	if token == nil || p.fatal != nil {
		return
	}
	if !p.suppress {
		p.log.Add(grammatica.NewParseError(grammatica.UnexpectedToken,
			fmt.Sprintf("%q, expected %s", token.Image(), p.tokenNames(expected)),
			token.StartLine(), token.StartColumn()))
	}
	p.suppress = true
}

func (p *Parser) tokenNames(ids []int) string {
	if len(ids) == 0 {
		return "end of input"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tp := p.tz.Pattern(id); tp != nil {
			names = append(names, tp.Name())
		}
	}
	return strings.Join(names, " or ")
}

// recoverTo skips input tokens until the upcoming token belongs to the
// follow set of the production, or the input ends. Skipped tokens do not
// lift the error suppression.
func (p *Parser) recoverTo(pp *ProductionPattern) {
	set := p.recovery[pp.id]
	for {
		token := p.peekToken(0)
		if token == nil || p.fatal != nil {
			return
		}
		if set.Contains(token.ID()) {
			return
		}
		tracer().Debugf("error recovery skips %s", token)
		p.queue = p.queue[1:]
		p.consumed++
	}
}
