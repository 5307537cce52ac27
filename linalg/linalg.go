package linalg

import "math"

// SqL2 returns the squared euclidean distance between x and y.
// Only the first len(x) coordinates of y are read.
func SqL2[T Number, U Number](x []T, y []U) float64 {
	dist := 0.0

	i := 0
	for ; i < len(x)%4; i++ {
		diff := float64(x[i]) - float64(y[i])
		dist += diff * diff
	}

	for ; i < len(x); i += 4 {
		diff0 := float64(x[i+0]) - float64(y[i+0])
		diff1 := float64(x[i+1]) - float64(y[i+1])
		diff2 := float64(x[i+2]) - float64(y[i+2])
		diff3 := float64(x[i+3]) - float64(y[i+3])
		dist += diff0*diff0 + diff1*diff1 + diff2*diff2 + diff3*diff3
	}

	return dist
}

// L2 returns the euclidean distance between x and y.
func L2[T Number, U Number](x []T, y []U) float64 {
	return math.Sqrt(SqL2(x, y))
}

// Distances computes the euclidean distance from query to every candidate.
// The result has the same length and order as candidates.
func Distances[T Number](query []T, candidates [][]T) []float64 {
	dists := make([]float64, len(candidates))
	for i, c := range candidates {
		dists[i] = L2(query, c)
	}

	return dists
}

// DistancesFunc is Distances for candidates that carry their coordinates inside
// another type, e.g. points tagged with an index.
func DistancesFunc[T Number, E any](query []T, candidates []E, coords func(E) []T) []float64 {
	dists := make([]float64, len(candidates))
	for i, c := range candidates {
		dists[i] = L2(query, coords(c))
	}

	return dists
}

// PlaneDistance returns the distance from query to the axis aligned hyperplane
// coordinate[axis] == value.
func PlaneDistance[T Number](query []T, axis int, value T) float64 {
	return math.Abs(float64(query[axis]) - float64(value))
}
