package depgraph

import "strings"

// Resolver maps raw import tokens to registered module names. Resolution
// is pure name matching against the registry; it never inspects source
// text or target code.
type Resolver struct {
	reg *Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve maps a raw import token, in the context of the importing
// module's qualified name, to the name of a registered module.
//
// Relative tokens (leading dots) are first normalized against the
// importer's name: one trailing name component is dropped per dot, and
// the token's suffix appended. The normalized (or absolute) candidate is
// then matched exactly, falling back to progressively shorter dotted
// prefixes so that a token like "os.path.join" can resolve to a
// registered "os.path" or "os". The longest matching prefix wins.
//
// ok is false when no candidate matches: unresolved imports are
// expected, not errors.
func (rs *Resolver) Resolve(token, importer string) (string, bool) {
	if token == "" {
		return "", false
	}
	candidate := token
	if strings.HasPrefix(token, ".") {
		candidate = normalizeRelative(token, importer)
	}
	for candidate != "" {
		if _, ok := rs.reg.Lookup(candidate); ok {
			return candidate, true
		}
		idx := strings.LastIndex(candidate, ".")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return "", false
}

// ResolveAll resolves every raw token of every registered module, adding
// an edge to the importing node for each successful resolution. Running
// it again over the same registry is a no-op: edge insertion is
// idempotent. Returns the number of tokens that matched nothing.
func (rs *Resolver) ResolveAll() int {
	unresolved := 0
	for node := range rs.reg.All() {
		for _, token := range node.RawImports {
			target, ok := rs.Resolve(token, node.Name)
			if !ok {
				unresolved++
				continue
			}
			node.AddDependency(target)
		}
	}
	return unresolved
}

// normalizeRelative rewrites a relative token ("..sibling") into an
// absolute dotted name using the importer's qualified name. A token of k
// dots climbs k name components: ".x" imported by "pkg.sub.mod" becomes
// "pkg.sub.x", "..x" becomes "pkg.x", and a dots-only token names the
// ancestor package itself. Climbing past the top level yields "".
func normalizeRelative(token, importer string) string {
	dots := 0
	for dots < len(token) && token[dots] == '.' {
		dots++
	}
	suffix := token[dots:]

	parts := strings.Split(importer, ".")
	if dots > len(parts) {
		return ""
	}
	base := parts[:len(parts)-dots]
	if suffix != "" {
		base = append(base, strings.Split(suffix, ".")...)
	}
	return strings.Join(base, ".")
}
