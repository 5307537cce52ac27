package linalg

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Min[T Number](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func Max[T Number](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// IsNaN reports whether v is a floating point NaN. It is always false for integers.
func IsNaN[T Number](v T) bool {
	return math.IsNaN(float64(v))
}
