package flat

import (
	"context"

	"github.com/ar90n/kdtree/collection"
	"github.com/ar90n/kdtree/common"
	"github.com/ar90n/kdtree/linalg"
	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
)

var (
	ErrEmptyFeatures      = errors.New("flat: no features")
	ErrInvalidFeatureDim  = errors.New("flat: invalid feature dim")
	ErrInvalidNeighborNum = errors.New("flat: number of neighbors must be positive")
)

// Candidate is a feature index and its euclidean distance to the query.
type Candidate struct {
	Index    int
	Distance float64
}

type chunk struct {
	Begin uint
	End   uint
}

func getChunks(n, procs uint) []chunk {
	if n < procs {
		procs = n
	}
	if procs == 0 {
		return nil
	}

	chunks := make([]chunk, 0, procs)
	bs := n / procs
	rem := n % procs
	bi := uint(0)
	for i := uint(0); i < procs; i++ {
		ei := bi + bs
		if i < rem {
			ei += 1
		}

		chunks = append(chunks, chunk{Begin: bi, End: ei})
		bi = ei
	}

	return chunks
}

func validate[T linalg.Number](features [][]T, query []T) error {
	if len(features) == 0 {
		return ErrEmptyFeatures
	}

	for i, feature := range features {
		if len(feature) != len(query) {
			return errors.Wrapf(ErrInvalidFeatureDim, "feature %d has %d coordinates, query has %d", i, len(feature), len(query))
		}
	}

	return nil
}

// Distances computes the distance from query to every feature, splitting the
// scan over up to maxGoroutines goroutines (zero means one per CPU).
func Distances[T linalg.Number](ctx context.Context, features [][]T, query []T, maxGoroutines uint) ([]float64, error) {
	if err := validate(features, query); err != nil {
		return nil, err
	}

	dists := make([]float64, len(features))
	p := pool.New().WithContext(ctx)
	for _, c := range getChunks(uint(len(features)), common.GetProcNum(maxGoroutines)) {
		c := c
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := c.Begin; i < c.End; i++ {
				dists[i] = linalg.L2(query, features[i])
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return dists, nil
}

// Search returns the n features closest to query by exhaustive scan, in
// ascending distance. Features at equal distance come out in no particular order.
func Search[T linalg.Number](ctx context.Context, features [][]T, query []T, n uint, maxGoroutines uint) ([]Candidate, error) {
	if n == 0 {
		return nil, ErrInvalidNeighborNum
	}

	dists, err := Distances(ctx, features, query, maxGoroutines)
	if err != nil {
		return nil, err
	}

	queue := collection.NewPriorityQueue[int](len(dists))
	for i, d := range dists {
		queue.Push(i, d)
	}

	n = linalg.Min(n, uint(queue.Len()))
	candidates := make([]Candidate, n)
	for i := range candidates {
		item, err := queue.PopWithPriority()
		if err != nil {
			return nil, err
		}
		candidates[i] = Candidate{Index: item.Item, Distance: item.Priority}
	}

	return candidates, nil
}

// Nearest returns the first feature at the minimum distance from query.
func Nearest[T linalg.Number](features [][]T, query []T) (Candidate, error) {
	if err := validate(features, query); err != nil {
		return Candidate{}, err
	}

	best := Candidate{Index: 0, Distance: linalg.L2(query, features[0])}
	for i, feature := range features[1:] {
		if d := linalg.L2(query, feature); d < best.Distance {
			best = Candidate{Index: i + 1, Distance: d}
		}
	}

	return best, nil
}
