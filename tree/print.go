package tree

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a parse tree to w, one line per node, indented two spaces
// per level. Token lines carry the first line of the token image and the
// start position:
//
//	Expression(10)
//	  NUMBER(2): "12", line: 1, col: 2
//
// Multi-line token images are truncated after the first line.
func Print(w io.Writer, node Node) {
	printNode(w, node, 0)
}

func printNode(w io.Writer, node Node, level int) {
	indent := strings.Repeat("  ", level)
	if token, ok := node.(*TokenNode); ok {
		image := token.Image()
		if i := strings.IndexByte(image, '\n'); i >= 0 {
			image = image[:i] + "(...)"
		}
		fmt.Fprintf(w, "%s%s(%d): %q, line: %d, col: %d\n", indent,
			token.Name(), token.ID(), image, token.StartLine(), token.StartColumn())
		return
	}
	fmt.Fprintf(w, "%s%s(%d)\n", indent, node.Name(), node.ID())
	for i := 0; i < node.ChildCount(); i++ {
		printNode(w, node.Child(i), level+1)
	}
}

// Leaves returns the token leaves of a parse tree in source order.
func Leaves(node Node) []*TokenNode {
	var leaves []*TokenNode
	collectLeaves(node, &leaves)
	return leaves
}

func collectLeaves(node Node, leaves *[]*TokenNode) {
	if token, ok := node.(*TokenNode); ok {
		*leaves = append(*leaves, token)
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectLeaves(node.Child(i), leaves)
	}
}
