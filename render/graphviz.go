package render

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// Graphviz lays the display tree out as a directed graph and renders it in
// the given format (graphviz.XDOT, graphviz.SVG, graphviz.PNG or graphviz.JPG).
func Graphviz(w io.Writer, tree map[string]any, format graphviz.Format) error {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return errors.Wrap(err, "render: create graph")
	}
	defer func() {
		graph.Close()
		g.Close()
	}()

	b := graphBuilder{graph: graph}
	for _, v := range parseNodes(tree) {
		if _, err := b.addVertex(v); err != nil {
			return err
		}
	}

	if err := g.Render(graph, format, w); err != nil {
		return errors.Wrapf(err, "render: %s", format)
	}
	return nil
}

type graphBuilder struct {
	graph *cgraph.Graph
	nodes int
	edges int
}

func (b *graphBuilder) addVertex(v *vertex) (*cgraph.Node, error) {
	node, err := b.graph.CreateNode(fmt.Sprintf("n%d", b.nodes))
	if err != nil {
		return nil, errors.Wrapf(err, "render: node %q", v.Label)
	}
	b.nodes++

	label := v.Label
	if v.Marker != "" {
		label = fmt.Sprintf("%s\n%s", v.Label, v.Marker)
	}
	node.SetLabel(label)
	if v.Leaf {
		node.SetShape(cgraph.BoxShape)
	}

	for _, e := range v.Edges {
		child, err := b.addVertex(e.To)
		if err != nil {
			return nil, err
		}

		ge, err := b.graph.CreateEdge(fmt.Sprintf("e%d", b.edges), node, child)
		if err != nil {
			return nil, errors.Wrapf(err, "render: edge %q", e.Label)
		}
		b.edges++
		ge.SetLabel(e.Label)
	}

	return node, nil
}
