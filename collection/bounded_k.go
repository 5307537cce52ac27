package collection

import (
	"github.com/google/btree"
)

const boundedKDegree = 8

type distanceGroup[V any] struct {
	Distance float64
	Items    []V
}

func lessDistanceGroup[V any](a, b *distanceGroup[V]) bool {
	return a.Distance < b.Distance
}

// BoundedK keeps at most k items ordered by distance. Items at exactly the same
// distance share one group and keep their insertion order.
//
// When an insertion makes the container hold k+1 items, the item appended last
// to the group with the largest distance is evicted.
type BoundedK[V any] struct {
	k      int
	size   int
	groups *btree.BTreeG[*distanceGroup[V]]
}

func NewBoundedK[V any](k int) (*BoundedK[V], error) {
	if k <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &BoundedK[V]{
		k:      k,
		groups: btree.NewG(boundedKDegree, lessDistanceGroup[V]),
	}, nil
}

// Insert adds item at the given distance. distance must not be NaN.
func (bk *BoundedK[V]) Insert(distance float64, item V) {
	key := &distanceGroup[V]{Distance: distance}
	if group, ok := bk.groups.Get(key); ok {
		group.Items = append(group.Items, item)
	} else {
		key.Items = []V{item}
		bk.groups.ReplaceOrInsert(key)
	}
	bk.size++

	if bk.size <= bk.k {
		return
	}

	farthest, _ := bk.groups.Max()
	last := len(farthest.Items) - 1
	var zero V
	farthest.Items[last] = zero
	farthest.Items = farthest.Items[:last]
	if len(farthest.Items) == 0 {
		bk.groups.Delete(farthest)
	}
	bk.size--
}

// MaxKey returns the largest distance currently held.
func (bk *BoundedK[V]) MaxKey() (float64, error) {
	farthest, ok := bk.groups.Max()
	if !ok {
		return 0, ErrEmptyContainer
	}

	return farthest.Distance, nil
}

// Len returns the number of items, not the number of distinct distances.
func (bk *BoundedK[V]) Len() int {
	return bk.size
}

func (bk *BoundedK[V]) Cap() int {
	return bk.k
}

func (bk *BoundedK[V]) Full() bool {
	return bk.k <= bk.size
}

// Drain returns the held items in ascending distance order and empties the container.
func (bk *BoundedK[V]) Drain() []WithPriority[V] {
	items := make([]WithPriority[V], 0, bk.size)
	bk.groups.Ascend(func(group *distanceGroup[V]) bool {
		for _, item := range group.Items {
			items = append(items, WithPriority[V]{
				Item:     item,
				Priority: group.Distance,
			})
		}
		return true
	})

	bk.groups.Clear(false)
	bk.size = 0
	return items
}
