package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadCSV(t *testing.T) {
	type TestCase struct {
		name  string
		input string
		want  [][]float64
		err   error
	}

	testCases := []TestCase{
		{
			name:  "points",
			input: "1,2,3\n4, 5, 6\n",
			want:  [][]float64{{1, 2, 3}, {4, 5, 6}},
		},
		{
			name:  "comments and blank lines",
			input: "# x,y\n\n0.5,-1\n1e3,2\n",
			want:  [][]float64{{0.5, -1}, {1000, 2}},
		},
		{
			name:  "empty",
			input: "",
			want:  [][]float64{},
		},
		{
			name:  "invalid number",
			input: "1,2\n3,x\n",
			err:   ErrInvalidNumber,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tc.input))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_ReadCSVRaggedRecords(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2\n3\n"))
	assert.Error(t, err)
}

func Test_ReadCSVInvalidNumberLine(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2\n3,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func Test_ReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("2,3\n5,4\n"), 0o644))

	got, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3}, {5, 4}}, got)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_ParsePoint(t *testing.T) {
	got, err := ParsePoint("3, 1,4")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 4}, got)

	_, err = ParsePoint(" ")
	assert.ErrorIs(t, err, ErrEmptyRecord)

	_, err = ParsePoint("3,,4")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
