package depgraph

import "testing"

func mustRegister(t *testing.T, reg *Registry, name, location string, rawImports ...string) *ModuleNode {
	t.Helper()
	node, err := reg.Register(name, location, rawImports)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return node
}

func TestNormalizeRelative(t *testing.T) {
	cases := []struct {
		token    string
		importer string
		want     string
	}{
		{".sibling", "pkg.sub.mod", "pkg.sub.sibling"},
		{"..pkg2", "pkg.sub.mod", "pkg.pkg2"},
		{".", "pkg.sub.mod", "pkg.sub"},
		{"..", "pkg.sub.mod", "pkg"},
		{"...", "pkg.sub.mod", ""},
		{"....", "pkg.sub.mod", ""},
		{".x", "toplevel", "x"},
		{"..util.helpers", "a.b.c.d", "a.b.util.helpers"},
	}
	for _, tc := range cases {
		got := normalizeRelative(tc.token, tc.importer)
		if got != tc.want {
			t.Errorf("normalizeRelative(%q, %q) = %q, want %q", tc.token, tc.importer, got, tc.want)
		}
	}
}

func TestResolveExactMatch(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "pkg.sub.mod", "pkg/sub/mod.py")
	mustRegister(t, reg, "pkg.sub.sibling", "pkg/sub/sibling.py")

	rs := NewResolver(reg)
	target, ok := rs.Resolve("pkg.sub.sibling", "pkg.sub.mod")
	if !ok || target != "pkg.sub.sibling" {
		t.Fatalf("expected exact match pkg.sub.sibling, got %q ok=%v", target, ok)
	}
}

func TestResolveRelative(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "pkg.sub", "pkg/sub/__init__.py")
	mustRegister(t, reg, "pkg.sub.mod", "pkg/sub/mod.py")
	mustRegister(t, reg, "pkg.sub.sibling", "pkg/sub/sibling.py")
	mustRegister(t, reg, "pkg.pkg2", "pkg/pkg2.py")

	rs := NewResolver(reg)

	if target, ok := rs.Resolve(".sibling", "pkg.sub.mod"); !ok || target != "pkg.sub.sibling" {
		t.Errorf(".sibling from pkg.sub.mod = %q ok=%v, want pkg.sub.sibling", target, ok)
	}
	if target, ok := rs.Resolve("..pkg2", "pkg.sub.mod"); !ok || target != "pkg.pkg2" {
		t.Errorf("..pkg2 from pkg.sub.mod = %q ok=%v, want pkg.pkg2", target, ok)
	}
	if target, ok := rs.Resolve(".", "pkg.sub.mod"); !ok || target != "pkg.sub" {
		t.Errorf(". from pkg.sub.mod = %q ok=%v, want pkg.sub", target, ok)
	}
}

func TestResolvePrefixFallback(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "config", "config.py")

	rs := NewResolver(reg)
	target, ok := rs.Resolve("config.Config", "app")
	if !ok || target != "config" {
		t.Fatalf("config.Config should fall back to config, got %q ok=%v", target, ok)
	}
}

func TestResolvePrefersLongestPrefix(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "os", "")
	mustRegister(t, reg, "os.path", "")

	rs := NewResolver(reg)
	target, ok := rs.Resolve("os.path.join", "x")
	if !ok || target != "os.path" {
		t.Fatalf("os.path.join should resolve to the longest prefix os.path, got %q ok=%v", target, ok)
	}
}

func TestResolveUnresolved(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "x", "x.py")

	rs := NewResolver(reg)
	for _, token := range []string{"os.path.join", "", "nonexistent", "..above", "."} {
		if target, ok := rs.Resolve(token, "x"); ok {
			t.Errorf("token %q should be unresolved, resolved to %q", token, target)
		}
	}
}

func TestResolveAllAddsEdgesAndCountsUnresolved(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "x", "x.py", "os.path.join", "y")
	mustRegister(t, reg, "y", "y.py")

	unresolved := NewResolver(reg).ResolveAll()
	if unresolved != 1 {
		t.Errorf("expected 1 unresolved token, got %d", unresolved)
	}

	x, _ := reg.Lookup("x")
	if !x.HasDependency("y") {
		t.Errorf("expected edge x -> y")
	}
	if x.DependencyCount() != 1 {
		t.Errorf("expected x to have exactly 1 outgoing edge, got %d", x.DependencyCount())
	}
}

func TestResolveAllUnresolvedImportYieldsNoEdge(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "x", "x.py", "os.path.join")

	NewResolver(reg).ResolveAll()

	x, _ := reg.Lookup("x")
	if x.DependencyCount() != 0 {
		t.Fatalf("x should have zero outgoing edges, got %d", x.DependencyCount())
	}
}

func TestResolveAllIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "a", "a.py", "b", "b", ".b")
	mustRegister(t, reg, "b", "b.py", "a")

	rs := NewResolver(reg)
	rs.ResolveAll()
	a, _ := reg.Lookup("a")
	first := a.Dependencies()

	rs.ResolveAll()
	second := a.Dependencies()

	if len(first) != len(second) {
		t.Fatalf("edge set grew on second resolution: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("edge set changed on second resolution: %v vs %v", first, second)
		}
	}
}
