package kdtree

import (
	"context"

	"github.com/ar90n/kdtree/common"
	"github.com/ar90n/kdtree/linalg"
	"github.com/ar90n/kdtree/pipeline"
	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
)

const streamBufferSize = 64

type BatchResult[T linalg.Number] struct {
	Query     int
	Neighbors []Neighbor[T]
	Err       error
}

// SearchChannel runs Search for every target on up to maxGoroutines goroutines
// and streams the results in completion order. The channel is closed when all
// targets are done or ctx is canceled.
func (t *Tree[T]) SearchChannel(ctx context.Context, targets [][]T, k int, maxGoroutines uint) <-chan BatchResult[T] {
	outputStream := make(chan BatchResult[T], streamBufferSize)
	go func() {
		defer close(outputStream)

		p := pool.New().WithMaxGoroutines(int(common.GetProcNum(maxGoroutines)))
		for i := range pipeline.Seq(ctx, uint(len(targets))) {
			i := i
			p.Go(func() {
				neighbors, err := t.Search(targets[i], k)
				select {
				case <-ctx.Done():
				case outputStream <- BatchResult[T]{Query: i, Neighbors: neighbors, Err: err}:
				}
			})
		}
		p.Wait()
	}()

	return outputStream
}

// SearchBatch is SearchChannel collected in target order. It fails on the
// first failing target.
func (t *Tree[T]) SearchBatch(ctx context.Context, targets [][]T, k int, maxGoroutines uint) ([][]Neighbor[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]Neighbor[T], len(targets))
	done := 0
	for r := range t.SearchChannel(ctx, targets, k, maxGoroutines) {
		if r.Err != nil {
			return nil, errors.Wrapf(r.Err, "query %d", r.Query)
		}
		results[r.Query] = r.Neighbors
		done++
	}

	if done < len(targets) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Newf("kdtree: %d of %d queries finished", done, len(targets))
	}
	return results, nil
}
