package tree

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/scanner"
)

// tokensFor runs a tiny tokenizer to produce real tokens for tree
// construction: words and numbers, blanks ignored.
func tokensFor(t *testing.T, input string) []*scanner.Token {
	tz := scanner.New(strings.NewReader(input))
	tz.AddPattern(scanner.NewTokenPattern(1, "WORD", scanner.Regexp, "[a-z]+"))
	tz.AddPattern(scanner.NewTokenPattern(2, "NUMBER", scanner.Regexp, "[0-9]+"))
	tz.AddPattern(scanner.NewTokenPattern(3, "WS", scanner.Regexp, "[ \\n]+").SetIgnore())
	var tokens []*scanner.Token
	for {
		token, err := tz.Next()
		if err != nil {
			t.Fatal(err)
		}
		if token == nil {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

func buildTree(t *testing.T) *ProductionNode {
	tokens := tokensFor(t, "hello 42")
	root := NewProductionNode(10, "Phrase", false)
	inner := NewProductionNode(11, "Number", false)
	root.AddChild(NewTokenNode(tokens[0]))
	inner.AddChild(NewTokenNode(tokens[1]))
	root.AddChild(inner)
	return root
}

func TestTreePositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	if root.StartLine() != 1 || root.StartColumn() != 1 {
		t.Errorf("expected root to start at (1,1), got (%d,%d)",
			root.StartLine(), root.StartColumn())
	}
	if root.EndLine() != 1 || root.EndColumn() != 8 {
		t.Errorf("expected root to end at (1,8), got (%d,%d)",
			root.EndLine(), root.EndColumn())
	}
	if root.Child(1).Parent() != Node(root) {
		t.Errorf("expected parent back-reference on children")
	}
}

func TestTreePrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	var b bytes.Buffer
	Print(&b, root)
	expected := strings.Join([]string{
		"Phrase(10)",
		`  WORD(1): "hello", line: 1, col: 1`,
		"  Number(11)",
		`    NUMBER(2): "42", line: 1, col: 7`,
		"",
	}, "\n")
	if b.String() != expected {
		t.Errorf("unexpected print output:\n%s\nexpected:\n%s", b.String(), expected)
	}
}

func TestAdoptSplices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	tokens := tokensFor(t, "hello 42")
	root := NewProductionNode(10, "Phrase", false)
	synthetic := NewProductionNode(12, "Hidden", true)
	synthetic.AddChild(NewTokenNode(tokens[0]))
	synthetic.AddChild(NewTokenNode(tokens[1]))
	root.Adopt(synthetic)
	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 spliced children, got %d", root.ChildCount())
	}
	if root.Child(0).Parent() != Node(root) {
		t.Errorf("expected spliced children to point to the new parent")
	}
	if synthetic.ChildCount() != 0 {
		t.Errorf("expected the synthetic node to be emptied")
	}
}

func TestValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	root.AddValue(42)
	root.AddValue("x")
	if len(root.Values()) != 2 || root.Values()[0] != 42 {
		t.Errorf("expected values [42 x], got %v", root.Values())
	}
}

// orderAnalyzer records the visit order of a walk.
type orderAnalyzer struct {
	enters []string
	exits  []string
	fail   string // node name to fail on, if any
}

func (oa *orderAnalyzer) Enter(node Node) error {
	if node.Name() == oa.fail {
		return fmt.Errorf("rejected %s", node.Name())
	}
	oa.enters = append(oa.enters, node.Name())
	return nil
}

func (oa *orderAnalyzer) Exit(node Node) error {
	oa.exits = append(oa.exits, node.Name())
	return nil
}

func TestWalkOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	oa := &orderAnalyzer{}
	if err := Walk(root, oa); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(oa.enters, " "); got != "Phrase WORD Number NUMBER" {
		t.Errorf("unexpected enter order %q", got)
	}
	if got := strings.Join(oa.exits, " "); got != "WORD NUMBER Number Phrase" {
		t.Errorf("unexpected exit order %q", got)
	}
}

func TestWalkAbortsOnAnalyzerError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	oa := &orderAnalyzer{fail: "Number"}
	err := Walk(root, oa)
	pe, ok := err.(*grammatica.ParseError)
	if !ok || pe.Code != grammatica.Analysis {
		t.Fatalf("expected a fatal analysis error, got %v", err)
	}
	if pe.Line != 1 || pe.Column != 7 {
		t.Errorf("expected the error to carry the node position (1,7), got (%d,%d)",
			pe.Line, pe.Column)
	}
}

func TestGraphVizExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.tree")
	defer teardown()
	//
	root := buildTree(t)
	var b bytes.Buffer
	ToGraphViz(root, &b)
	dot := b.String()
	if !strings.Contains(dot, "digraph G") || !strings.Contains(dot, "Phrase") {
		t.Errorf("expected a DOT graph mentioning the root, got:\n%s", dot)
	}
	if !strings.Contains(dot, "rank=max") {
		t.Errorf("expected terminals pinned to the bottom rank")
	}
}
