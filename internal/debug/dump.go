// Package debug renders an octree as a human-readable tree, grounded on
// iancmcc-bandit/tree.go's PrintTree/addToTree pair — the same
// treeprint.Tree branch-and-leaf walk, applied to octree.Node instead of
// bandit's pooled interval tree. This is diagnostic tooling only: it is
// never reachable from an insert/remove/query path, and it is not the
// out-of-scope renderer-side debug wireframe (that draws meshes in a
// scene; this writes text).
package debug

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/phuhao00/octreecore/internal/octree"
)

// Dump writes a treeprint rendering of root, labeled with name, to w.
func Dump(w io.Writer, name string, root *octree.Node) error {
	tree := treeprint.New()
	tree.SetValue(name)
	addNode(tree, root)
	_, err := io.WriteString(w, tree.String())
	return err
}

func addNode(parent treeprint.Tree, n *octree.Node) {
	box := n.Box()
	label := fmt.Sprintf("[%.2f,%.2f,%.2f]-[%.2f,%.2f,%.2f] objects=%d",
		box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z, len(n.OwnRecords()))

	if n.IsLeaf() {
		parent.AddMetaNode("leaf", label)
		for _, rv := range n.OwnRecords() {
			parent.AddNode(fmt.Sprintf("id=%d", rv.ID))
		}
		return
	}

	branch := parent.AddMetaBranch("node", label)
	for _, rv := range n.OwnRecords() {
		branch.AddNode(fmt.Sprintf("id=%d (straddler)", rv.ID))
	}
	for _, c := range n.Children() {
		addNode(branch, c)
	}
}
