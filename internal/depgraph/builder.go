package depgraph

import (
	"iter"
	"strings"
)

// BuildOptions controls a single build invocation. A nil Policy keeps
// every node, matching DefaultFilterPolicy.
type BuildOptions struct {
	Policy *FilterPolicy
}

// Graph is the finished, read-only result of a build: the surviving
// nodes, their edge sets, and the detected cycles. No entity is mutated
// after Build returns.
type Graph struct {
	registry *Registry

	// Cycles are the detected import cycles, each an ordered name
	// sequence closed by repeating the first name at the end.
	Cycles [][]string
	Stats  GraphStats
}

// Build runs the full pipeline over the upstream identities: ingestion,
// import resolution, origin classification, filtering, cycle detection.
// The only error condition is a duplicate module name; every other
// anomaly degrades to "no edge" and the build completes with best-effort
// results.
func Build(identities []ModuleIdentity, opts BuildOptions) (*Graph, error) {
	reg := NewRegistry()
	for _, id := range identities {
		if _, err := reg.Register(id.Name, id.Location, id.RawImports); err != nil {
			return nil, err
		}
	}

	unresolved := NewResolver(reg).ResolveAll()
	Classify(reg)
	policy := DefaultFilterPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	ApplyFilter(reg, policy)
	cycles := DetectCycles(reg)

	return &Graph{
		registry: reg,
		Cycles:   cycles,
		Stats:    computeStats(reg, cycles, unresolved),
	}, nil
}

// Nodes yields the surviving nodes in registry insertion order.
func (g *Graph) Nodes() iter.Seq[*ModuleNode] { return g.registry.All() }

// Lookup returns the named node, if it survived filtering.
func (g *Graph) Lookup(name string) (*ModuleNode, bool) { return g.registry.Lookup(name) }

// NodeCount returns the number of surviving nodes.
func (g *Graph) NodeCount() int { return g.registry.Len() }

// CycleCount returns the number of detected cycles.
func (g *Graph) CycleCount() int { return len(g.Cycles) }

// ExternalIdentities synthesizes one location-less identity per top-level
// component of every absolute import that does not resolve against the
// discovered set, so that external packages show up as graph nodes. The
// resolver's prefix matching then connects "os.path.join" style tokens
// to the synthesized "os" node. Relative tokens never produce externals.
func ExternalIdentities(discovered []ModuleIdentity) []ModuleIdentity {
	reg := NewRegistry()
	for _, id := range discovered {
		// Duplicates surface later in Build; skip them here.
		_, _ = reg.Register(id.Name, id.Location, nil)
	}
	resolver := NewResolver(reg)

	seen := make(map[string]struct{})
	var externals []ModuleIdentity
	for _, id := range discovered {
		for _, token := range id.RawImports {
			if token == "" || strings.HasPrefix(token, ".") {
				continue
			}
			if _, ok := resolver.Resolve(token, id.Name); ok {
				continue
			}
			top := topLevel(token)
			if _, dup := seen[top]; dup {
				continue
			}
			seen[top] = struct{}{}
			externals = append(externals, ModuleIdentity{Name: top})
		}
	}
	return externals
}
