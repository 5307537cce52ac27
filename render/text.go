package render

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Text draws a display tree with box drawing characters, one node per line.
func Text(tree map[string]any) string {
	root := treeprint.New()
	for _, v := range parseNodes(tree) {
		addVertex(root, "", v)
	}

	return root.String()
}

func addVertex(parent treeprint.Tree, edgeLabel string, v *vertex) {
	label := v.Label
	if v.Marker != "" {
		label = fmt.Sprintf("%s: %s", v.Label, v.Marker)
	}

	var branch treeprint.Tree
	switch {
	case v.Leaf && edgeLabel == "":
		parent.AddNode(label)
		return
	case v.Leaf:
		parent.AddMetaNode(edgeLabel, label)
		return
	case edgeLabel == "":
		branch = parent.AddBranch(label)
	default:
		branch = parent.AddMetaBranch(edgeLabel, label)
	}

	for _, e := range v.Edges {
		addVertex(branch, e.Label, e.To)
	}
}
