package pipeline

import (
	"context"
)

const streamBufferSize = 8

func Seq(ctx context.Context, n uint) <-chan int {
	outputStream := make(chan int, streamBufferSize)
	go func() {
		defer close(outputStream)
		for i := uint(0); i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case outputStream <- int(i):
			}
		}
	}()

	return outputStream
}

// FromSlice streams the elements of items in order.
func FromSlice[T any](ctx context.Context, items []T) <-chan T {
	outputStream := make(chan T, streamBufferSize)
	go func() {
		defer close(outputStream)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case outputStream <- item:
			}
		}
	}()

	return outputStream
}

// ToSlice collects inputStream until it is closed or ctx is done.
func ToSlice[T any](ctx context.Context, inputStream <-chan T) []T {
	output := make([]T, 0)
	for item := range OrDone(ctx, inputStream) {
		output = append(output, item)
	}

	return output
}

func OrDone[T any](ctx context.Context, inputStream <-chan T) <-chan T {
	outputStream := make(chan T, streamBufferSize)
	go func() {
		defer close(outputStream)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-inputStream:
				if !ok {
					return
				}

				select {
				case <-ctx.Done():
				case outputStream <- v:
				}
			}
		}
	}()

	return outputStream
}
