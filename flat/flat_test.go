package flat

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dataset = [][]float64{
	{9, 6, 3},
	{4, 7, 4},
	{8, 1, 5},
	{7, 2, 2},
	{7, 4, 3},
	{3.2, 5, 1},
}

func Test_getChunks(t *testing.T) {
	type TestCase struct {
		N, Procs uint
		Want     []chunk
	}

	for _, tc := range []TestCase{
		{N: 10, Procs: 3, Want: []chunk{{0, 4}, {4, 7}, {7, 10}}},
		{N: 2, Procs: 4, Want: []chunk{{0, 1}, {1, 2}}},
		{N: 5, Procs: 1, Want: []chunk{{0, 5}}},
		{N: 0, Procs: 4, Want: nil},
	} {
		assert.Equal(t, tc.Want, getChunks(tc.N, tc.Procs), "n=%d procs=%d", tc.N, tc.Procs)
	}
}

func Test_Search(t *testing.T) {
	ctx := context.Background()
	query := []float64{3, 1, 4}

	for _, procs := range []uint{0, 1, 4} {
		got, err := Search(ctx, dataset, query, 3, procs)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, 3, got[0].Index)
		assert.InDelta(t, math.Sqrt(21), got[0].Distance, 1e-12)
		assert.Equal(t, 5, got[1].Index)
		assert.InDelta(t, math.Sqrt(26), got[2].Distance, 1e-12)
	}

	got, err := Search(ctx, dataset, query, 100, 2)
	require.NoError(t, err)
	assert.Len(t, got, len(dataset))
}

func Test_SearchErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Search(ctx, dataset, []float64{1, 2, 3}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidNeighborNum)

	_, err = Search(ctx, [][]float64{}, []float64{1, 2, 3}, 1, 1)
	assert.ErrorIs(t, err, ErrEmptyFeatures)

	_, err = Search(ctx, dataset, []float64{1, 2}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidFeatureDim)
}

func Test_DistancesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Distances(ctx, dataset, []float64{0, 0, 0}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Nearest(t *testing.T) {
	got, err := Nearest(dataset, []float64{3, 1, 4})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Index)

	// ties keep the first feature
	got, err = Nearest([][]int{{1, 0}, {-1, 0}, {0, 1}}, []int{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, 1.0, got.Distance)
}
