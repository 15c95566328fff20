package depgraph

import (
	"fmt"
	"sort"
)

// Origin classifies where a module comes from.
type Origin string

const (
	// OriginUnknown is the zero value before the classification pass runs.
	OriginUnknown Origin = ""
	// OriginLocal marks modules discovered inside the analyzed project.
	OriginLocal Origin = "local"
	// OriginThirdParty marks externally installed packages.
	OriginThirdParty Origin = "third_party"
	// OriginStdlib marks Python standard library modules.
	OriginStdlib Origin = "stdlib"
)

// ModuleNode is one analyzable source unit, identified by its fully
// qualified dotted name. Edges are stored as a name-keyed set owned by
// the importing node; an edge is a string key into the registry, never
// a pointer to another node.
type ModuleNode struct {
	Name       string
	Location   string // originating file; empty for modules not found on disk
	Origin     Origin
	RawImports []string

	deps map[string]struct{}
}

// AddDependency records an edge to the named module. Adding the same
// edge twice has no effect.
func (n *ModuleNode) AddDependency(name string) {
	if n.deps == nil {
		n.deps = make(map[string]struct{})
	}
	n.deps[name] = struct{}{}
}

// HasDependency reports whether an edge to the named module exists.
func (n *ModuleNode) HasDependency(name string) bool {
	_, ok := n.deps[name]
	return ok
}

// Dependencies returns the node's outgoing edges as a sorted name list.
func (n *ModuleNode) Dependencies() []string {
	if len(n.deps) == 0 {
		return nil
	}
	out := make([]string, 0, len(n.deps))
	for name := range n.deps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DependencyCount returns the number of outgoing edges.
func (n *ModuleNode) DependencyCount() int { return len(n.deps) }

func (n *ModuleNode) removeDependency(name string) {
	delete(n.deps, name)
}

// DuplicateModuleError is returned when two discovered modules map to the
// same fully qualified name. Identity conflicts are fatal to the build.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q already registered", e.Name)
}

// ModuleIdentity is the upstream hand-off for one discovered module:
// its qualified name, an optional file location, and the raw import
// tokens extracted from its source.
type ModuleIdentity struct {
	Name       string   `json:"name"`
	Location   string   `json:"location,omitempty"`
	RawImports []string `json:"raw_imports,omitempty"`
}
