// Package render turns a finished graph into output documents. Every
// renderer is a pure consumer of the read-only graph.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// DOT renders the graph in Graphviz DOT format, with per-origin node
// styling and circular dependencies highlighted in red.
type DOT struct{}

func (DOT) Format() string { return "dot" }

func (DOT) Render(g *depgraph.Graph, w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  bgcolor=\"white\";\n")
	b.WriteString("  splines=ortho;\n")
	b.WriteString("  nodesep=0.5;\n")
	b.WriteString("  ranksep=0.8;\n")
	b.WriteString("  node [fontname=\"Helvetica\"];\n\n")

	cycleNodes, cycleEdges := cycleMembership(g.Cycles)

	for node := range g.Nodes() {
		b.WriteString(fmt.Sprintf("  %s [label=\"%s\" %s];\n",
			dotID(node.Name), displayName(node.Name), nodeStyle(node, cycleNodes[node.Name])))
	}
	b.WriteString("\n")

	for node := range g.Nodes() {
		for _, dep := range node.Dependencies() {
			if _, ok := g.Lookup(dep); !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s -> %s [%s];\n",
				dotID(node.Name), dotID(dep), edgeStyle(cycleEdges[edgeKey(node.Name, dep)])))
		}
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func cycleMembership(cycles [][]string) (map[string]bool, map[string]bool) {
	nodes := make(map[string]bool)
	edges := make(map[string]bool)
	for _, cycle := range cycles {
		for _, name := range cycle {
			nodes[name] = true
		}
		// Cycles are closed sequences, so consecutive pairs cover every
		// edge including the back edge.
		for i := 0; i+1 < len(cycle); i++ {
			edges[edgeKey(cycle[i], cycle[i+1])] = true
		}
	}
	return nodes, edges
}

func edgeKey(from, to string) string { return from + " -> " + to }

func nodeStyle(node *depgraph.ModuleNode, inCycle bool) string {
	if inCycle {
		return `shape=box style="filled,rounded,bold" color="#8B0000" fillcolor="#FF6B6B" fontcolor="white" fontsize=10 penwidth=2.5`
	}
	switch node.Origin {
	case depgraph.OriginLocal:
		return `shape=box style="filled,rounded" color="#2E86AB" fillcolor="#7FB3D3" fontcolor="#000000" fontsize=10`
	case depgraph.OriginThirdParty:
		return `shape=box style="filled,rounded" color="#F18F01" fillcolor="#FFD93D" fontcolor="#000000" fontsize=10`
	default: // stdlib
		return `shape=box style="filled,rounded" color="#6C757D" fillcolor="#E9ECEF" fontcolor="#495057" fontsize=9`
	}
}

func edgeStyle(inCycle bool) string {
	if inCycle {
		return `color="#FF0000" penwidth=3.0 arrowhead=vee`
	}
	return `color="#708090" penwidth=1.5 arrowhead=vee`
}

// dotID makes a module name safe for use as a DOT identifier.
func dotID(name string) string {
	return "\"" + strings.NewReplacer(".", "_", "-", "_", "\"", "").Replace(name) + "\""
}

func displayName(name string) string {
	if len(name) > 40 {
		return name[:37] + "..."
	}
	return name
}
