package tree

import (
	"fmt"
	"io"

	"github.com/npillmayer/grammatica"
)

// Analyzer is the callback contract for parse tree walks. Enter is
// called before a node's children are visited, Exit afterwards. Token
// leaves receive both calls with no children in between.
//
// An error returned from either hook aborts the walk; Walk wraps it in a
// fatal analysis ParseError carrying the position of the node concerned.
// A hook error which already is a *grammatica.ParseError is returned
// unchanged.
type Analyzer interface {
	Enter(node Node) error
	Exit(node Node) error
}

// Walk visits a parse tree depth-first in source order, invoking the
// analyzer's hooks on every node.
func Walk(root Node, a Analyzer) error {
	return walk(root, a)
}

func walk(node Node, a Analyzer) error {
	if err := a.Enter(node); err != nil {
		return analysisError(node, err)
	}
	for i := 0; i < node.ChildCount(); i++ {
		if err := walk(node.Child(i), a); err != nil {
			return err
		}
	}
	if err := a.Exit(node); err != nil {
		return analysisError(node, err)
	}
	return nil
}

func analysisError(node Node, err error) error {
	if _, ok := err.(*grammatica.ParseError); ok {
		return err
	}
	return grammatica.NewParseError(grammatica.Analysis, err.Error(),
		node.StartLine(), node.StartColumn())
}

// --- GraphViz --------------------------------------------------------------

// ToGraphViz exports a parse tree to an io.Writer in GraphViz DOT format.
// Token leaves render filled, at the bottom rank.
func ToGraphViz(root Node, w io.Writer) {
	io.WriteString(w, `digraph G {
{ graph [fontname="Helvetica"];
  node [fontname="Helvetica",shape=box,fontsize=10];
  edge [fontname="Helvetica",fontsize=9];
`)
	serial := 0
	names := make(map[Node]string)
	declare(root, w, &serial, names)
	io.WriteString(w, "}\n")
	connect(root, w, names)
	io.WriteString(w, "{ rank=max;\n")
	for _, leaf := range Leaves(root) {
		fmt.Fprintf(w, "%s;", names[Node(leaf)])
	}
	io.WriteString(w, "\n}\n}\n")
}

func declare(node Node, w io.Writer, serial *int, names map[Node]string) {
	names[node] = fmt.Sprintf("n%03d", *serial)
	*serial++
	if token, ok := node.(*TokenNode); ok {
		fmt.Fprintf(w, "%s [label=\"%s\\n%q\" fillcolor=grey90 style=filled]\n",
			names[node], token.Name(), token.Image())
		return
	}
	fmt.Fprintf(w, "%s [label=\"%s\"]\n", names[node], node.Name())
	for i := 0; i < node.ChildCount(); i++ {
		declare(node.Child(i), w, serial, names)
	}
}

func connect(node Node, w io.Writer, names map[Node]string) {
	for i := 0; i < node.ChildCount(); i++ {
		fmt.Fprintf(w, "%s -> %s [label=%d]\n", names[node], names[node.Child(i)], i)
		connect(node.Child(i), w, names)
	}
}
