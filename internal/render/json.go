package render

import (
	"encoding/json"
	"io"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// JSON renders the graph as an indented JSON document: nodes in registry
// order, the cycle list, and the computed stats.
type JSON struct{}

func (JSON) Format() string { return "json" }

func (JSON) Render(g *depgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.Export())
}
