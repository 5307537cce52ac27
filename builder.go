package kdtree

import (
	"fmt"
	"sort"
	"time"

	"github.com/ar90n/kdtree/common"
	"github.com/ar90n/kdtree/linalg"
	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type Builder[T linalg.Number] struct {
	maxGoroutines uint
	logger        *zap.Logger
}

func NewBuilder[T linalg.Number]() *Builder[T] {
	return &Builder[T]{
		logger: zap.NewNop(),
	}
}

// SetMaxGoroutines bounds the number of subtrees built concurrently.
// Zero means one per CPU and one builds sequentially.
func (b *Builder[T]) SetMaxGoroutines(maxGoroutines uint) *Builder[T] {
	b.maxGoroutines = maxGoroutines
	return b
}

func (b *Builder[T]) SetLogger(logger *zap.Logger) *Builder[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	return b
}

func (b Builder[T]) GetParameterString() string {
	return fmt.Sprintf("maxGoroutines=%d", common.GetProcNum(b.maxGoroutines))
}

// Build builds a tree over dataset with the default builder.
func Build[T linalg.Number](dataset [][]T) (*Tree[T], error) {
	return NewBuilder[T]().Build(dataset)
}

// Build copies dataset and partitions it. Row i of dataset becomes the point
// with Index i.
func (b *Builder[T]) Build(dataset [][]T) (*Tree[T], error) {
	start := time.Now()

	dim, err := validateDataset(dataset)
	if err != nil {
		return nil, err
	}

	points := make([]Point[T], len(dataset))
	for i, row := range dataset {
		points[i] = Point[T]{
			Coords: append(make([]T, 0, dim), row...),
			Index:  i,
		}
	}

	fanOut := common.FanOutDepth(common.GetProcNum(b.maxGoroutines))
	ordered := append([]Point[T]{}, points...)
	tree := &Tree[T]{
		root:   buildSubTree(ordered, 0, dim, fanOut),
		points: points,
		dim:    dim,
	}
	tree.Walk(func(node *Node[T]) bool {
		tree.nodes++
		tree.depth = linalg.Max(tree.depth, node.Depth)
		return true
	})

	b.logger.Debug("kd-tree built",
		zap.Int("points", tree.Len()),
		zap.Int("dim", dim),
		zap.Int("nodes", tree.nodes),
		zap.Int("depth", tree.depth),
		zap.Int("fanOutDepth", fanOut),
		zap.Duration("elapsed", time.Since(start)),
	)
	return tree, nil
}

func validateDataset[T linalg.Number](dataset [][]T) (int, error) {
	if len(dataset) == 0 {
		return 0, ErrEmptyDataset
	}

	dim := len(dataset[0])
	if dim == 0 {
		return 0, ErrZeroDim
	}

	for i, row := range dataset {
		if len(row) != dim {
			return 0, errors.Wrapf(ErrInconsistentDim, "point %d has %d coordinates, want %d", i, len(row), dim)
		}
		for j, v := range row {
			if linalg.IsNaN(v) {
				return 0, errors.Wrapf(ErrInvalidCoordinate, "point %d coordinate %d", i, j)
			}
		}
	}

	return dim, nil
}

// buildSubTree sorts points in place. Each node keeps a subslice of points, so
// the regions handed to the children never overlap it.
func buildSubTree[T linalg.Number](points []Point[T], depth, dim, fanOut int) *Node[T] {
	axis := depth % dim
	slices.SortStableFunc(points, func(a, b Point[T]) bool {
		return a.Coords[axis] < b.Coords[axis]
	})

	median := points[len(points)/2].Coords[axis]
	lo := sort.Search(len(points), func(i int) bool {
		return median <= points[i].Coords[axis]
	})
	hi := sort.Search(len(points), func(i int) bool {
		return median < points[i].Coords[axis]
	})

	node := &Node[T]{
		Depth:    depth,
		SplitDim: axis,
		Median:   median,
		Points:   points[lo:hi:hi],
		Size:     len(points),
	}

	build := func(sub []Point[T]) *Node[T] {
		if len(sub) == 0 {
			return nil
		}
		child := buildSubTree(sub, depth+1, dim, fanOut)
		child.parent = node
		return child
	}

	lower, upper := points[:lo], points[hi:]
	if depth < fanOut && 0 < len(lower) && 0 < len(upper) {
		p := pool.New().WithMaxGoroutines(2)
		p.Go(func() { node.Left = build(lower) })
		p.Go(func() { node.Right = build(upper) })
		p.Wait()
	} else {
		node.Left = build(lower)
		node.Right = build(upper)
	}

	return node
}
