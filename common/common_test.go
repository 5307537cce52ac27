package common

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetProcNum(t *testing.T) {
	assert.Equal(t, uint(runtime.NumCPU()), GetProcNum(0))
	assert.Equal(t, uint(3), GetProcNum(3))
}

func Test_FanOutDepth(t *testing.T) {
	type TestCase struct {
		Procs uint
		Want  int
	}

	for _, tc := range []TestCase{
		{Procs: 0, Want: 0},
		{Procs: 1, Want: 0},
		{Procs: 2, Want: 1},
		{Procs: 3, Want: 1},
		{Procs: 4, Want: 2},
		{Procs: 8, Want: 3},
		{Procs: 15, Want: 3},
		{Procs: 16, Want: 4},
	} {
		assert.Equal(t, tc.Want, FanOutDepth(tc.Procs), "procs=%d", tc.Procs)
	}
}
