package kdtree

import (
	"github.com/ar90n/kdtree/collection"
	"github.com/ar90n/kdtree/linalg"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

func (t *Tree[T]) validateTarget(target []T) error {
	if len(target) != t.dim {
		return errors.Wrapf(ErrDimMismatch, "got %d coordinates, want %d", len(target), t.dim)
	}
	for i, v := range target {
		if linalg.IsNaN(v) {
			return errors.Wrapf(ErrInvalidCoordinate, "target coordinate %d", i)
		}
	}

	return nil
}

type nearest[T linalg.Number] struct {
	found    bool
	distance float64
	point    Point[T]
}

// SearchNearest returns the point closest to target. Among points at the same
// minimum distance the first one visited wins.
func (t *Tree[T]) SearchNearest(target []T) (Neighbor[T], error) {
	if err := t.validateTarget(target); err != nil {
		return Neighbor[T]{}, err
	}

	best := nearest[T]{}
	t.root.searchNearest(target, &best)
	return Neighbor[T]{
		Distance: best.distance,
		Point:    best.point,
	}, nil
}

func (n *Node[T]) searchNearest(target []T, best *nearest[T]) {
	dists := linalg.DistancesFunc(target, n.Points, coordsOf[T])
	for i, d := range dists {
		if !best.found || d < best.distance {
			best.found = true
			best.distance = d
			best.point = n.Points[i]
		}
	}

	near, far := n.children(target)
	if near != nil {
		near.searchNearest(target, best)
	}

	// the far side can only hold a closer point if the best sphere crosses the plane
	if far != nil && linalg.PlaneDistance(target, n.SplitDim, n.Median) < best.distance {
		far.searchNearest(target, best)
	}
}

// Search returns up to k points closest to target in ascending distance.
// Points at the same distance keep the order in which they were found.
//
// When k is not smaller than the number of points every point is returned
// without traversing the tree, ordered by distance and then by index.
func (t *Tree[T]) Search(target []T, k int) ([]Neighbor[T], error) {
	if k <= 0 {
		return nil, errors.Wrapf(ErrInvalidK, "k=%d", k)
	}
	if err := t.validateTarget(target); err != nil {
		return nil, err
	}

	if len(t.points) <= k {
		return t.all(target), nil
	}

	found, err := collection.NewBoundedK[Point[T]](k)
	if err != nil {
		return nil, errors.Wrap(err, "kdtree: search")
	}
	t.root.search(target, found)

	items := found.Drain()
	neighbors := make([]Neighbor[T], len(items))
	for i, item := range items {
		neighbors[i] = Neighbor[T]{
			Distance: item.Priority,
			Point:    item.Item,
		}
	}
	return neighbors, nil
}

func (n *Node[T]) search(target []T, found *collection.BoundedK[Point[T]]) {
	dists := linalg.DistancesFunc(target, n.Points, coordsOf[T])
	for i, d := range dists {
		found.Insert(d, n.Points[i])
	}

	near, far := n.children(target)
	if near != nil {
		near.search(target, found)
	}
	if far == nil {
		return
	}

	if !found.Full() {
		far.search(target, found)
		return
	}

	radius, err := found.MaxKey()
	if err == nil && linalg.PlaneDistance(target, n.SplitDim, n.Median) < radius {
		far.search(target, found)
	}
}

func (t *Tree[T]) all(target []T) []Neighbor[T] {
	neighbors := make([]Neighbor[T], len(t.points))
	for i, p := range t.points {
		neighbors[i] = Neighbor[T]{
			Distance: linalg.L2(target, p.Coords),
			Point:    p,
		}
	}

	slices.SortStableFunc(neighbors, func(a, b Neighbor[T]) bool {
		return a.Distance < b.Distance
	})
	return neighbors
}
