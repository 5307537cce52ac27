package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = map[string]any{
	"dim=0 points=3": map[string]any{
		"<2": map[string]any{"dim=1 points=1": 1},
		">2": map[string]any{"dim=1 points=1": 1},
	},
}

func Test_ParseNodes(t *testing.T) {
	vs := parseNodes(sample)
	require.Len(t, vs, 1)

	root := vs[0]
	assert.Equal(t, "dim=0 points=3", root.Label)
	assert.False(t, root.Leaf)
	require.Len(t, root.Edges, 2)
	assert.Equal(t, "<2", root.Edges[0].Label)
	assert.Equal(t, ">2", root.Edges[1].Label)
	assert.True(t, root.Edges[0].To.Leaf)
	assert.Equal(t, "1", root.Edges[0].To.Marker)
}

func Test_Text(t *testing.T) {
	s := Text(sample)
	assert.Contains(t, s, "dim=0 points=3")
	assert.Contains(t, s, "[<2]")
	assert.Contains(t, s, "[>2]")
	assert.Equal(t, 2, strings.Count(s, "dim=1 points=1: 1"))
}

func Test_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	root := got["dim=0 points=3"].(map[string]any)
	left := root["<2"].(map[string]any)
	assert.Equal(t, 1.0, left["dim=1 points=1"])
}

func Test_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sample))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	root := got["dim=0 points=3"].(map[string]any)
	right := root[">2"].(map[string]any)
	assert.Equal(t, 1, right["dim=1 points=1"])
}

func Test_Graphviz(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Graphviz(&buf, sample, graphviz.XDOT))

	s := buf.String()
	assert.Contains(t, s, "digraph")
	assert.Contains(t, s, "n0")
	assert.Contains(t, s, "dim=0 points=3")
	assert.Contains(t, s, "box")
}

func Test_Write(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml", "dot"} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample, format), format)
		assert.Contains(t, buf.String(), "dim=0 points=3", format)
	}

	var buf bytes.Buffer
	err := Write(&buf, sample, "bmp")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"bmp"`)
}
