package depgraph

import "iter"

// Registry is the exclusively owned collection of module nodes for one
// build. Insertion order is preserved so that rendering and cycle
// reports are deterministic across runs with identical input.
type Registry struct {
	nodes map[string]*ModuleNode
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*ModuleNode)}
}

// Register creates a node for the given identity. Registering a name
// twice is a programming error upstream and returns *DuplicateModuleError.
func (r *Registry) Register(name, location string, rawImports []string) (*ModuleNode, error) {
	if _, exists := r.nodes[name]; exists {
		return nil, &DuplicateModuleError{Name: name}
	}
	node := &ModuleNode{
		Name:       name,
		Location:   location,
		RawImports: rawImports,
	}
	r.nodes[name] = node
	r.order = append(r.order, name)
	return node, nil
}

// Lookup returns the node registered under name, if any.
func (r *Registry) Lookup(name string) (*ModuleNode, bool) {
	node, ok := r.nodes[name]
	return node, ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int { return len(r.nodes) }

// All yields every node in insertion order. The sequence is restartable.
func (r *Registry) All() iter.Seq[*ModuleNode] {
	return func(yield func(*ModuleNode) bool) {
		for _, name := range r.order {
			if !yield(r.nodes[name]) {
				return
			}
		}
	}
}

// Remove deletes the named nodes and strips every edge referencing them
// from the surviving nodes. This is the only deletion primitive; it is
// used by the filtering pass.
func (r *Registry) Remove(names map[string]struct{}) {
	if len(names) == 0 {
		return
	}
	kept := r.order[:0]
	for _, name := range r.order {
		if _, dropped := names[name]; dropped {
			delete(r.nodes, name)
			continue
		}
		kept = append(kept, name)
	}
	r.order = kept
	for _, node := range r.nodes {
		for name := range names {
			node.removeDependency(name)
		}
	}
}
