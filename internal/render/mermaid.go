package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// Mermaid renders the graph as a Mermaid flowchart.
type Mermaid struct{}

func (Mermaid) Format() string { return "mermaid" }

func (Mermaid) Render(g *depgraph.Graph, w io.Writer) error {
	var b strings.Builder
	b.WriteString("graph TB\n")

	cycleNodes, _ := cycleMembership(g.Cycles)

	for node := range g.Nodes() {
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", mermaidID(node.Name), displayName(node.Name)))
	}
	for node := range g.Nodes() {
		for _, dep := range node.Dependencies() {
			if _, ok := g.Lookup(dep); !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s --> %s\n", mermaidID(node.Name), mermaidID(dep)))
		}
	}

	b.WriteString("  classDef local fill:#7FB3D3,stroke:#2E86AB\n")
	b.WriteString("  classDef third_party fill:#FFD93D,stroke:#F18F01\n")
	b.WriteString("  classDef stdlib fill:#E9ECEF,stroke:#6C757D\n")
	b.WriteString("  classDef cyclic fill:#FF6B6B,stroke:#8B0000,color:#fff\n")

	for node := range g.Nodes() {
		class := string(node.Origin)
		if cycleNodes[node.Name] {
			class = "cyclic"
		}
		if class == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  class %s %s\n", mermaidID(node.Name), class))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mermaidID(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}
