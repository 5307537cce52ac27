package kdtree

import (
	"fmt"

	"github.com/ar90n/kdtree/render"
)

// Label names a node by its split dimension and the number of points below it.
func (n *Node[T]) Label() string {
	return fmt.Sprintf("dim=%d points=%d", n.SplitDim, n.Size)
}

// ToDisplayTree exports the tree as nested maps for renderers.
//
// Each node is a single entry map keyed by its Label. An internal node maps to
// its children keyed "<median" and ">median"; a leaf maps to its point count.
func (t *Tree[T]) ToDisplayTree() map[string]any {
	return t.root.display()
}

func (n *Node[T]) display() map[string]any {
	if n.IsLeaf() {
		return map[string]any{n.Label(): len(n.Points)}
	}

	children := map[string]any{}
	if n.Left != nil {
		children[fmt.Sprintf("<%v", n.Median)] = n.Left.display()
	}
	if n.Right != nil {
		children[fmt.Sprintf(">%v", n.Median)] = n.Right.display()
	}
	return map[string]any{n.Label(): children}
}

func (t *Tree[T]) String() string {
	return render.Text(t.ToDisplayTree())
}

var _ fmt.Stringer = (*Tree[float64])(nil)
