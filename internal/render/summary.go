package render

import (
	"fmt"
	"strings"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// Summary returns a human-readable overview of the graph for console
// output.
func Summary(g *depgraph.Graph) string {
	var b strings.Builder
	b.WriteString("Dependency Graph\n")
	b.WriteString("================\n\n")
	b.WriteString(fmt.Sprintf("Modules:       %d total\n", g.Stats.TotalNodes))
	b.WriteString(fmt.Sprintf("  Local:       %d\n", g.Stats.LocalCount))
	b.WriteString(fmt.Sprintf("  Third-party: %d\n", g.Stats.ThirdPartyCount))
	b.WriteString(fmt.Sprintf("  Stdlib:      %d\n", g.Stats.StdlibCount))
	b.WriteString(fmt.Sprintf("Edges:         %d total\n", g.Stats.TotalEdges))
	b.WriteString(fmt.Sprintf("Unresolved:    %d imports\n", g.Stats.UnresolvedImports))
	if g.Stats.MaxFanOut > 0 {
		b.WriteString(fmt.Sprintf("Max Fan-Out:   %d (%s)\n", g.Stats.MaxFanOut, g.Stats.HotspotModule))
	}
	b.WriteString(fmt.Sprintf("Max Fan-In:    %d\n", g.Stats.MaxFanIn))
	b.WriteString(fmt.Sprintf("Components:    %d\n", g.Stats.ConnectedComponents))

	if len(g.Cycles) > 0 {
		b.WriteString(fmt.Sprintf("\nCircular Dependencies: %d\n", len(g.Cycles)))
		for i, cycle := range g.Cycles {
			b.WriteString(fmt.Sprintf("  %d: %s\n", i+1, joinArrow(cycle)))
		}
	}
	return b.String()
}
