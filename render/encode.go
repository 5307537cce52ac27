package render

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

func JSON(w io.Writer, tree map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(tree), "render: json")
}

func YAML(w io.Writer, tree map[string]any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return errors.Wrap(err, "render: yaml")
	}
	return errors.Wrap(enc.Close(), "render: yaml")
}
