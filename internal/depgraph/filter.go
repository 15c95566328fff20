package depgraph

import "path/filepath"

// FilterPolicy controls which nodes survive the post-classification
// pruning pass.
type FilterPolicy struct {
	IncludeThirdParty bool
	IncludeStdlib     bool
	// ExcludePatterns are glob patterns matched against a node's file
	// location (full relative path and base name) and, for nodes without
	// a location, against the dotted module name.
	ExcludePatterns []string
}

// DefaultFilterPolicy keeps everything, matching the original tool's
// defaults.
func DefaultFilterPolicy() FilterPolicy {
	return FilterPolicy{IncludeThirdParty: true, IncludeStdlib: true}
}

// ApplyFilter removes excluded nodes from the registry together with
// every edge referencing them. It runs strictly after classification and
// strictly before cycle detection, so cycles are only reported among the
// surviving nodes. Returns the number of nodes dropped.
func ApplyFilter(reg *Registry, policy FilterPolicy) int {
	drop := make(map[string]struct{})
	for node := range reg.All() {
		switch {
		case node.Origin == OriginThirdParty && !policy.IncludeThirdParty:
			drop[node.Name] = struct{}{}
		case node.Origin == OriginStdlib && !policy.IncludeStdlib:
			drop[node.Name] = struct{}{}
		case matchesExclude(node, policy.ExcludePatterns):
			drop[node.Name] = struct{}{}
		}
	}
	reg.Remove(drop)
	return len(drop)
}

func matchesExclude(node *ModuleNode, patterns []string) bool {
	for _, pattern := range patterns {
		if node.Location != "" {
			if ok, _ := filepath.Match(pattern, node.Location); ok {
				return true
			}
			if ok, _ := filepath.Match(pattern, filepath.Base(node.Location)); ok {
				return true
			}
		} else if ok, _ := filepath.Match(pattern, node.Name); ok {
			return true
		}
	}
	return false
}
