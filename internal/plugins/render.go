package plugins

import (
	"io"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// Renderer turns a finished graph into one output format. Renderers are
// pure consumers of the read-only graph.
type Renderer interface {
	// Format returns the output format identifier (e.g. "dot").
	Format() string
	// Render writes the rendered graph to w.
	Render(g *depgraph.Graph, w io.Writer) error
}
