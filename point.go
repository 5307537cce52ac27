package kdtree

import "github.com/ar90n/kdtree/linalg"

// Point is a dataset row tagged with its position in the dataset passed to Build.
type Point[T linalg.Number] struct {
	Coords []T
	Index  int
}

func coordsOf[T linalg.Number](p Point[T]) []T {
	return p.Coords
}

// Neighbor is a search hit: a dataset point and its euclidean distance to the target.
type Neighbor[T linalg.Number] struct {
	Distance float64
	Point    Point[T]
}
