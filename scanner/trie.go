package scanner

import (
	"unicode"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/grammatica/cbuf"
)

// stringDFA is the matcher for literal token patterns: a shared-prefix
// trie over all registered literals. Branching within a node goes through
// a character-keyed binary search tree. A lookup walks the input as far
// as the trie reaches and reports the longest terminal passed on the way.
type stringDFA struct {
	root       *trieNode
	ignoreCase bool
}

type trieNode struct {
	branches *redblacktree.Tree // rune → *trieNode
	pattern  *TokenPattern      // terminal at this node, if any
	seq      int                // registration sequence of the terminal
}

func newStringDFA(ignoreCase bool) *stringDFA {
	return &stringDFA{
		root:       newTrieNode(),
		ignoreCase: ignoreCase,
	}
}

func newTrieNode() *trieNode {
	return &trieNode{branches: redblacktree.NewWith(utils.RuneComparator)}
}

// insert adds a literal to the trie. If the identical literal has been
// inserted before, the earlier registration keeps the terminal; ties
// between patterns always resolve to the pattern registered first.
func (d *stringDFA) insert(lit string, pattern *TokenPattern, seq int) {
	node := d.root
	for _, ch := range lit {
		if d.ignoreCase {
			ch = unicode.ToLower(ch)
		}
		child, ok := node.branches.Get(ch)
		if !ok {
			c := newTrieNode()
			node.branches.Put(ch, c)
			node = c
			continue
		}
		node = child.(*trieNode)
	}
	if node.pattern == nil {
		node.pattern = pattern
		node.seq = seq
	}
}

// match walks the trie from the buffer's current position and returns
// the longest terminal reached, with its length and registration
// sequence, or a nil pattern if no terminal was passed. hitEOF reports
// whether the walk ran out of input while the trie would have continued.
func (d *stringDFA) match(buf *cbuf.Buffer) (length int, pattern *TokenPattern, seq int, hitEOF bool) {
	node := d.root
	for offset := 0; ; offset++ {
		if node.pattern != nil {
			length, pattern, seq = offset, node.pattern, node.seq
		}
		if node.branches.Empty() {
			return
		}
		c := buf.Peek(offset)
		if c < 0 {
			hitEOF = true
			return
		}
		ch := rune(c)
		if d.ignoreCase {
			ch = unicode.ToLower(ch)
		}
		child, ok := node.branches.Get(ch)
		if !ok {
			return
		}
		node = child.(*trieNode)
	}
}
