package depgraph

// GraphStats holds computed metrics about the finished graph.
type GraphStats struct {
	TotalNodes          int    `json:"total_nodes"`
	TotalEdges          int    `json:"total_edges"`
	LocalCount          int    `json:"local_count"`
	ThirdPartyCount     int    `json:"third_party_count"`
	StdlibCount         int    `json:"stdlib_count"`
	MaxFanOut           int    `json:"max_fan_out"`
	HotspotModule       string `json:"hotspot_module,omitempty"` // module with most outgoing edges
	MaxFanIn            int    `json:"max_fan_in"`
	ConnectedComponents int    `json:"connected_components"`
	UnresolvedImports   int    `json:"unresolved_imports"`
	CycleCount          int    `json:"cycle_count"`
}

func computeStats(reg *Registry, cycles [][]string, unresolved int) GraphStats {
	stats := GraphStats{
		TotalNodes:        reg.Len(),
		UnresolvedImports: unresolved,
		CycleCount:        len(cycles),
	}

	fanIn := make(map[string]int)
	for node := range reg.All() {
		switch node.Origin {
		case OriginLocal:
			stats.LocalCount++
		case OriginThirdParty:
			stats.ThirdPartyCount++
		case OriginStdlib:
			stats.StdlibCount++
		}

		out := node.DependencyCount()
		stats.TotalEdges += out
		if out > stats.MaxFanOut {
			stats.MaxFanOut = out
			stats.HotspotModule = node.Name
		}
		for _, dep := range node.Dependencies() {
			fanIn[dep]++
		}
	}
	for _, count := range fanIn {
		if count > stats.MaxFanIn {
			stats.MaxFanIn = count
		}
	}

	stats.ConnectedComponents = countComponents(reg)
	return stats
}

// countComponents counts weakly connected components via union-find.
func countComponents(reg *Registry) int {
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		if parent[x] == "" {
			parent[x] = x
		}
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		fa, fb := find(a), find(b)
		if fa != fb {
			parent[fa] = fb
		}
	}

	for node := range reg.All() {
		find(node.Name)
		for _, dep := range node.Dependencies() {
			if _, ok := reg.Lookup(dep); ok {
				union(node.Name, dep)
			}
		}
	}

	roots := make(map[string]struct{})
	for node := range reg.All() {
		roots[find(node.Name)] = struct{}{}
	}
	return len(roots)
}
