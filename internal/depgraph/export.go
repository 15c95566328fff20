package depgraph

// NodeExport is the serializable form of one graph node.
type NodeExport struct {
	Name         string   `json:"name"`
	Origin       Origin   `json:"origin"`
	Location     string   `json:"location,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// GraphExport is the serializable form of a finished graph, used for the
// JSON renderer and for hand-off between workflow activities.
type GraphExport struct {
	Nodes  []NodeExport `json:"nodes"`
	Cycles [][]string   `json:"cycles,omitempty"`
	Stats  GraphStats   `json:"stats"`
}

// Export produces a serializable snapshot of the graph, nodes in
// registry order.
func (g *Graph) Export() GraphExport {
	out := GraphExport{
		Cycles: g.Cycles,
		Stats:  g.Stats,
	}
	for node := range g.Nodes() {
		out.Nodes = append(out.Nodes, NodeExport{
			Name:         node.Name,
			Origin:       node.Origin,
			Location:     node.Location,
			Dependencies: node.Dependencies(),
		})
	}
	return out
}

// FromExport reconstructs a read-only Graph from its serialized form.
// Edges are restored as recorded; no resolution or classification runs.
func FromExport(export GraphExport) (*Graph, error) {
	reg := NewRegistry()
	for _, n := range export.Nodes {
		node, err := reg.Register(n.Name, n.Location, nil)
		if err != nil {
			return nil, err
		}
		node.Origin = n.Origin
		for _, dep := range n.Dependencies {
			node.AddDependency(dep)
		}
	}
	return &Graph{
		registry: reg,
		Cycles:   export.Cycles,
		Stats:    export.Stats,
	}, nil
}
