package syntax

import (
	"github.com/xlab/treeprint"
)

// Dump renders the token tree, one token per line.
func (t *Tree) Dump() string {
	root := treeprint.NewWithRoot(t.Root.String())
	dumpChildren(root, t.Root)
	return root.String()
}

func dumpChildren(n treeprint.Tree, tok *Token) {
	if tok.Cond != nil {
		dumpToken(n.AddBranch("if"), tok.Cond)
	}
	for _, sub := range tok.Sub {
		dumpToken(n, sub)
	}
}

func dumpToken(n treeprint.Tree, tok *Token) {
	if len(tok.Sub) == 0 && tok.Cond == nil {
		n.AddNode(tok.String())
		return
	}
	dumpChildren(n.AddBranch(tok.String()), tok)
}
