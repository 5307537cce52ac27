package kdtree

import (
	"github.com/ar90n/kdtree/linalg"
)

// Node is one hyperplane partition of the dataset.
//
// Points holds the points lying exactly on the plane Coords[SplitDim] == Median.
// Every point under Left is strictly below Median on SplitDim and every point
// under Right strictly above it.
type Node[T linalg.Number] struct {
	Depth    int
	SplitDim int
	Median   T
	Points   []Point[T]
	Left     *Node[T]
	Right    *Node[T]
	// Size is the number of points in the subtree rooted at this node.
	Size int

	parent *Node[T]
}

// Parent returns nil for the root.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

func (n *Node[T]) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// children returns the child on the target's side of the plane first.
// Targets lying on the plane go left.
func (n *Node[T]) children(target []T) (near, far *Node[T]) {
	if target[n.SplitDim] <= n.Median {
		return n.Left, n.Right
	}
	return n.Right, n.Left
}

// Tree is an immutable k-d tree. It is safe for concurrent searches.
type Tree[T linalg.Number] struct {
	root   *Node[T]
	points []Point[T]
	dim    int
	nodes  int
	depth  int
}

func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Len returns the number of points in the tree.
func (t *Tree[T]) Len() int {
	return len(t.points)
}

func (t *Tree[T]) Dim() int {
	return t.dim
}

// Depth returns the depth of the deepest node; a single node tree has depth 0.
func (t *Tree[T]) Depth() int {
	return t.depth
}

func (t *Tree[T]) NodeCount() int {
	return t.nodes
}

// Points returns the dataset in its original order. The slice is shared with
// the tree and must not be modified.
func (t *Tree[T]) Points() []Point[T] {
	return t.points
}

// Walk visits the nodes in pre-order, left before right. It stops as soon as
// fn returns false.
func (t *Tree[T]) Walk(fn func(node *Node[T]) bool) {
	stack := []*Node[T]{t.root}
	for 0 < len(stack) {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			return
		}

		if node.Right != nil {
			stack = append(stack, node.Right)
		}
		if node.Left != nil {
			stack = append(stack, node.Left)
		}
	}
}
