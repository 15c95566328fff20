package depgraph

// Node colors for the cycle-detection walk.
const (
	colorWhite = iota // unvisited
	colorGray         // on the current path
	colorBlack        // fully explored
)

// DetectCycles walks every node depth-first, in registry order, and
// reports each cycle found via a back edge to a gray node. A cycle is
// the contiguous suffix of the current path from the back edge's target,
// closed by repeating the first name at the end: a->b->a is reported as
// [a, b, a].
//
// Each node is visited once (O(V+E)). This is a detector, not an
// exhaustive enumerator: a fully explored node is never re-examined, so
// an additional edge-disjoint cycle through an already-black node is not
// reported separately.
func DetectCycles(reg *Registry) [][]string {
	color := make(map[string]int, reg.Len())
	path := make([]string, 0, reg.Len())
	var cycles [][]string

	var dfs func(node *ModuleNode)
	dfs = func(node *ModuleNode) {
		color[node.Name] = colorGray
		path = append(path, node.Name)

		for _, dep := range node.Dependencies() {
			target, ok := reg.Lookup(dep)
			if !ok {
				continue
			}
			switch color[dep] {
			case colorWhite:
				dfs(target)
			case colorGray:
				for i := len(path) - 1; i >= 0; i-- {
					if path[i] == dep {
						cycle := make([]string, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						cycle = append(cycle, dep)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		path = path[:len(path)-1]
		color[node.Name] = colorBlack
	}

	for node := range reg.All() {
		if color[node.Name] == colorWhite {
			dfs(node)
		}
	}
	return cycles
}
