package render

import (
	"fmt"
	"sort"
)

// A display tree alternates two kinds of maps. A node map is keyed by node
// labels; each value is either a leaf marker (any non map value) or an edge map.
// An edge map is keyed by edge labels; each value is a node map or a leaf marker.

type vertex struct {
	Label  string
	Marker string
	Leaf   bool
	Edges  []edge
}

type edge struct {
	Label string
	To    *vertex
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseNodes(m map[string]any) []*vertex {
	vertices := make([]*vertex, 0, len(m))
	for _, label := range sortedKeys(m) {
		v := &vertex{Label: label}
		switch value := m[label].(type) {
		case map[string]any:
			v.Edges = parseEdges(value)
		default:
			v.Leaf = true
			v.Marker = fmt.Sprint(value)
		}
		vertices = append(vertices, v)
	}

	return vertices
}

func parseEdges(m map[string]any) []edge {
	edges := make([]edge, 0, len(m))
	for _, label := range sortedKeys(m) {
		switch value := m[label].(type) {
		case map[string]any:
			for _, child := range parseNodes(value) {
				edges = append(edges, edge{Label: label, To: child})
			}
		default:
			edges = append(edges, edge{
				Label: label,
				To:    &vertex{Label: fmt.Sprint(value), Leaf: true},
			})
		}
	}

	return edges
}
