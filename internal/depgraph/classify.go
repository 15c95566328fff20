package depgraph

import "strings"

// Classify assigns an origin to every node in the registry. A node with
// a recorded file location was discovered inside the analyzed project
// and is LOCAL; otherwise the top-level dotted component decides between
// STDLIB and THIRD_PARTY. The decision is purely name-based: no network,
// no filesystem.
//
// Origins are assigned exactly once; already-classified nodes are left
// untouched.
func Classify(reg *Registry) {
	for node := range reg.All() {
		if node.Origin != OriginUnknown {
			continue
		}
		switch {
		case node.Location != "":
			node.Origin = OriginLocal
		case IsStdlib(topLevel(node.Name)):
			node.Origin = OriginStdlib
		default:
			node.Origin = OriginThirdParty
		}
	}
}

func topLevel(name string) string {
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[:idx]
	}
	return name
}
