package main

import (
	"fmt"
	"math/rand"

	"github.com/ar90n/kdtree"
)

func randomFeatures(n, dim int) [][]uint8 {
	r := rand.New(rand.NewSource(1))
	features := make([][]uint8, n)
	for i := range features {
		features[i] = make([]uint8, dim)
		for j := range features[i] {
			features[i][j] = uint8(r.Intn(256))
		}
	}
	return features
}

func main() {
	dim := 64
	features := randomFeatures(10000, dim)

	tree, err := kdtree.NewBuilder[uint8]().Build(features)
	if err != nil {
		panic(err)
	}
	fmt.Printf("points: %d, nodes: %d, depth: %d\n", tree.Len(), tree.NodeCount(), tree.Depth())

	query := features[42]
	neighbors, err := tree.Search(query, 5)
	if err != nil {
		panic(err)
	}

	for i, n := range neighbors {
		fmt.Printf("%d: %d, %f\n", i, n.Point.Index, n.Distance)
	}
}
