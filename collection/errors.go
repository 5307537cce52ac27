package collection

import "github.com/cockroachdb/errors"

var (
	ErrEmptyPriorityQueue = errors.New("collection: empty priority queue")
	ErrEmptyContainer     = errors.New("collection: empty container")
	ErrInvalidCapacity    = errors.New("collection: capacity must be positive")
)
