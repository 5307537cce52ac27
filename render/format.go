package render

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-graphviz"
)

var ErrUnknownFormat = errors.New("render: unknown format")

// Formats lists the names accepted by Write.
var Formats = []string{"text", "json", "yaml", "dot", "svg", "png", "jpg"}

// Write renders tree to w in the named format.
func Write(w io.Writer, tree map[string]any, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, Text(tree))
		return errors.Wrap(err, "render: text")
	case "json":
		return JSON(w, tree)
	case "yaml":
		return YAML(w, tree)
	case "dot":
		return Graphviz(w, tree, graphviz.XDOT)
	case "svg":
		return Graphviz(w, tree, graphviz.SVG)
	case "png":
		return Graphviz(w, tree, graphviz.PNG)
	case "jpg":
		return Graphviz(w, tree, graphviz.JPG)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}
