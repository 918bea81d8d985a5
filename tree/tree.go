/*
Package tree implements parse trees.

A parse tree consists of token leaves and production nodes. Every node
knows its pattern id and name, its source extent (derived from the token
leaves below it) and carries a mutable list of values which analyzers may
attach during tree walks.

Production nodes own their children; the parent link is a back-reference
established at insertion. Synthetic productions never materialize as
nodes: the parser splices their children directly into the surrounding
node.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grammatica/scanner"
)

// tracer traces with key 'grammatica.tree'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.tree")
}

// Node is a node of a parse tree, either a token leaf (TokenNode) or an
// inner production node (ProductionNode).
type Node interface {
	// ID returns the token or production pattern id of this node.
	ID() int
	// Name returns the pattern name of this node.
	Name() string
	// Parent returns the node owning this node, or nil for the root.
	Parent() Node
	// ChildCount returns the number of children; 0 for token leaves.
	ChildCount() int
	// Child returns child number i.
	Child(i int) Node
	// StartLine returns the line of the first character covered by this
	// node, or 0 if the node covers no input.
	StartLine() int
	// StartColumn returns the column of the first character covered.
	StartColumn() int
	// EndLine returns the line of the last character covered.
	EndLine() int
	// EndColumn returns the column of the last character covered.
	EndColumn() int
	// Values returns the analyzer-attached values of this node.
	Values() []interface{}
	// AddValue attaches a value to this node.
	AddValue(v interface{})

	setParent(Node)
}

// --- Token leaves -----------------------------------------------------

// TokenNode is a leaf of the parse tree, wrapping one token.
type TokenNode struct {
	token  *scanner.Token
	parent Node
	values []interface{}
}

// NewTokenNode creates a leaf node for a token.
func NewTokenNode(token *scanner.Token) *TokenNode {
	return &TokenNode{token: token}
}

// Token returns the wrapped token.
func (t *TokenNode) Token() *scanner.Token {
	return t.token
}

// ID returns the token pattern id.
func (t *TokenNode) ID() int {
	return t.token.ID()
}

// Name returns the token pattern name.
func (t *TokenNode) Name() string {
	return t.token.Name()
}

// Image returns the matched text of the wrapped token.
func (t *TokenNode) Image() string {
	return t.token.Image()
}

// Parent returns the owning production node.
func (t *TokenNode) Parent() Node {
	return t.parent
}

// ChildCount returns 0; token nodes are leaves.
func (t *TokenNode) ChildCount() int {
	return 0
}

// Child returns nil; token nodes are leaves.
func (t *TokenNode) Child(i int) Node {
	return nil
}

// StartLine returns the line of the token's first character.
func (t *TokenNode) StartLine() int {
	return t.token.StartLine()
}

// StartColumn returns the column of the token's first character.
func (t *TokenNode) StartColumn() int {
	return t.token.StartColumn()
}

// EndLine returns the line of the token's last character.
func (t *TokenNode) EndLine() int {
	return t.token.EndLine()
}

// EndColumn returns the column of the token's last character.
func (t *TokenNode) EndColumn() int {
	return t.token.EndColumn()
}

// Values returns the analyzer-attached values.
func (t *TokenNode) Values() []interface{} {
	return t.values
}

// AddValue attaches a value.
func (t *TokenNode) AddValue(v interface{}) {
	t.values = append(t.values, v)
}

func (t *TokenNode) setParent(p Node) {
	t.parent = p
}

func (t *TokenNode) String() string {
	return t.token.String()
}

// --- Production nodes -------------------------------------------------

// ProductionNode is an inner node of the parse tree, representing one
// recognized production.
type ProductionNode struct {
	id        int
	name      string
	synthetic bool
	parent    Node
	children  []Node
	values    []interface{}
}

// NewProductionNode creates a production node without children.
func NewProductionNode(id int, name string, synthetic bool) *ProductionNode {
	return &ProductionNode{id: id, name: name, synthetic: synthetic}
}

// ID returns the production pattern id.
func (pn *ProductionNode) ID() int {
	return pn.id
}

// Name returns the production name.
func (pn *ProductionNode) Name() string {
	return pn.name
}

// IsSynthetic returns true if this node stems from a synthetic
// production and is to be spliced into its parent.
func (pn *ProductionNode) IsSynthetic() bool {
	return pn.synthetic
}

// Parent returns the owning node, or nil for the root.
func (pn *ProductionNode) Parent() Node {
	return pn.parent
}

// ChildCount returns the number of children.
func (pn *ProductionNode) ChildCount() int {
	return len(pn.children)
}

// Child returns child number i, or nil if out of range.
func (pn *ProductionNode) Child(i int) Node {
	if i < 0 || i >= len(pn.children) {
		return nil
	}
	return pn.children[i]
}

// AddChild appends a child and sets its parent link.
func (pn *ProductionNode) AddChild(child Node) {
	child.setParent(pn)
	pn.children = append(pn.children, child)
}

// Adopt splices the children of a synthetic node into this node,
// re-targeting their parent links.
func (pn *ProductionNode) Adopt(synthetic *ProductionNode) {
	tracer().Debugf("splicing %d children of synthetic %s", len(synthetic.children), synthetic.name)
	for _, child := range synthetic.children {
		pn.AddChild(child)
	}
	synthetic.children = nil
}

// StartLine returns the start line of the first child covering input.
func (pn *ProductionNode) StartLine() int {
	for _, child := range pn.children {
		if line := child.StartLine(); line > 0 {
			return line
		}
	}
	return 0
}

// StartColumn returns the start column of the first child covering
// input.
func (pn *ProductionNode) StartColumn() int {
	for _, child := range pn.children {
		if child.StartLine() > 0 {
			return child.StartColumn()
		}
	}
	return 0
}

// EndLine returns the end line of the last child covering input.
func (pn *ProductionNode) EndLine() int {
	for i := len(pn.children) - 1; i >= 0; i-- {
		if line := pn.children[i].EndLine(); line > 0 {
			return line
		}
	}
	return 0
}

// EndColumn returns the end column of the last child covering input.
func (pn *ProductionNode) EndColumn() int {
	for i := len(pn.children) - 1; i >= 0; i-- {
		if pn.children[i].EndLine() > 0 {
			return pn.children[i].EndColumn()
		}
	}
	return 0
}

// Values returns the analyzer-attached values.
func (pn *ProductionNode) Values() []interface{} {
	return pn.values
}

// AddValue attaches a value.
func (pn *ProductionNode) AddValue(v interface{}) {
	pn.values = append(pn.values, v)
}

func (pn *ProductionNode) setParent(p Node) {
	pn.parent = p
}

func (pn *ProductionNode) String() string {
	return pn.name
}
