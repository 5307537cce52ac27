package kdtree

import (
	"context"
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	r := rand.New(rand.NewSource(42))
	return randomDataset(r, n, dims, false)
}

func benchBuild(b *testing.B, n int, maxGoroutines uint) {
	b.Helper()
	data := generateBenchData(n, 8)
	builder := NewBuilder[float64]().SetMaxGoroutines(maxGoroutines)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild_1000(b *testing.B)          { benchBuild(b, 1000, 1) }
func BenchmarkBuild_10000(b *testing.B)         { benchBuild(b, 10000, 1) }
func BenchmarkBuildParallel_10000(b *testing.B) { benchBuild(b, 10000, 0) }

func benchSearch(b *testing.B, n, k int) {
	b.Helper()
	data := generateBenchData(n, 8)
	tree, err := Build(data)
	if err != nil {
		b.Fatal(err)
	}
	target := generateBenchData(1, 8)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.Search(target, k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch_10000_1(b *testing.B)  { benchSearch(b, 10000, 1) }
func BenchmarkSearch_10000_10(b *testing.B) { benchSearch(b, 10000, 10) }

func BenchmarkSearchNearest_10000(b *testing.B) {
	data := generateBenchData(10000, 8)
	tree, err := Build(data)
	if err != nil {
		b.Fatal(err)
	}
	target := generateBenchData(1, 8)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.SearchNearest(target); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchBatch_10000(b *testing.B) {
	data := generateBenchData(10000, 8)
	tree, err := Build(data)
	if err != nil {
		b.Fatal(err)
	}
	targets := generateBenchData(256, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.SearchBatch(context.Background(), targets, 5, 0); err != nil {
			b.Fatal(err)
		}
	}
}
