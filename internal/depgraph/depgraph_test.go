package depgraph

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRegisterDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "dup", "dup.py")

	_, err := reg.Register("dup", "other/dup.py", nil)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	var dupErr *DuplicateModuleError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateModuleError, got %T", err)
	}
	if dupErr.Name != "dup" {
		t.Errorf("expected error to name dup, got %q", dupErr.Name)
	}
}

func TestRegistryAllPreservesInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"zeta", "alpha", "mid.point", "beta"}
	for _, name := range names {
		mustRegister(t, reg, name, "")
	}

	// The sequence must be restartable and ordered both times.
	for round := 0; round < 2; round++ {
		i := 0
		for node := range reg.All() {
			if node.Name != names[i] {
				t.Fatalf("round %d position %d: got %s, want %s", round, i, node.Name, names[i])
			}
			i++
		}
		if i != len(names) {
			t.Fatalf("round %d: yielded %d nodes, want %d", round, i, len(names))
		}
	}
}

func TestRegistryRemoveStripsEdges(t *testing.T) {
	reg := NewRegistry()
	a := mustRegister(t, reg, "a", "a.py")
	mustRegister(t, reg, "b", "b.py")
	a.AddDependency("b")

	reg.Remove(map[string]struct{}{"b": {}})

	if _, ok := reg.Lookup("b"); ok {
		t.Error("b should be removed from the registry")
	}
	if a.HasDependency("b") {
		t.Error("edge a -> b should be removed with b")
	}
}

func TestClassify(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "app.models", "app/models.py")
	mustRegister(t, reg, "os", "")
	mustRegister(t, reg, "os.path", "")
	mustRegister(t, reg, "requests", "")

	Classify(reg)

	cases := map[string]Origin{
		"app.models": OriginLocal,
		"os":         OriginStdlib,
		"os.path":    OriginStdlib,
		"requests":   OriginThirdParty,
	}
	for name, want := range cases {
		node, _ := reg.Lookup(name)
		if node.Origin != want {
			t.Errorf("%s classified as %s, want %s", name, node.Origin, want)
		}
	}
}

func TestClassifyAssignsOnce(t *testing.T) {
	reg := NewRegistry()
	node := mustRegister(t, reg, "requests", "")
	node.Origin = OriginLocal // pre-assigned upstream

	Classify(reg)

	if node.Origin != OriginLocal {
		t.Fatalf("origin was reclassified to %s", node.Origin)
	}
}

func TestApplyFilterByOrigin(t *testing.T) {
	reg := NewRegistry()
	a := mustRegister(t, reg, "app", "app.py")
	mustRegister(t, reg, "os", "")
	mustRegister(t, reg, "requests", "")
	a.AddDependency("os")
	a.AddDependency("requests")
	Classify(reg)

	dropped := ApplyFilter(reg, FilterPolicy{IncludeThirdParty: false, IncludeStdlib: false})
	if dropped != 2 {
		t.Fatalf("expected 2 nodes dropped, got %d", dropped)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 surviving node, got %d", reg.Len())
	}
	if a.DependencyCount() != 0 {
		t.Errorf("edges to dropped nodes must be removed, %d remain", a.DependencyCount())
	}
}

func TestApplyFilterExcludePatterns(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "app.main", "app/main.py")
	mustRegister(t, reg, "app.generated", "app/generated.py")
	Classify(reg)

	ApplyFilter(reg, FilterPolicy{
		IncludeThirdParty: true,
		IncludeStdlib:     true,
		ExcludePatterns:   []string{"generated.py"},
	})

	if _, ok := reg.Lookup("app.generated"); ok {
		t.Error("app.generated should be excluded by pattern")
	}
	if _, ok := reg.Lookup("app.main"); !ok {
		t.Error("app.main should survive")
	}
}

func TestFilteredGraphIsSubset(t *testing.T) {
	identities := []ModuleIdentity{
		{Name: "app", Location: "app.py", RawImports: []string{"os", "requests", "app.util"}},
		{Name: "app.util", Location: "app/util.py", RawImports: []string{"json"}},
		{Name: "os"},
		{Name: "requests"},
		{Name: "json"},
	}

	full, err := Build(identities, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := Build(identities, BuildOptions{Policy: &FilterPolicy{}})
	if err != nil {
		t.Fatal(err)
	}

	for node := range filtered.Nodes() {
		if _, ok := full.Lookup(node.Name); !ok {
			t.Errorf("filtered node %s not present in unfiltered graph", node.Name)
		}
		for _, dep := range node.Dependencies() {
			if _, ok := filtered.Lookup(dep); !ok {
				t.Errorf("edge %s -> %s references a non-surviving node", node.Name, dep)
			}
		}
	}
}

func TestBuildDuplicateAbortsBeforeResolution(t *testing.T) {
	identities := []ModuleIdentity{
		{Name: "dup", Location: "dup.py", RawImports: []string{"other"}},
		{Name: "other", Location: "other.py"},
		{Name: "dup", Location: "pkg/dup.py"},
	}

	_, err := Build(identities, BuildOptions{})
	var dupErr *DuplicateModuleError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateModuleError, got %v", err)
	}
}

func TestBuildStats(t *testing.T) {
	identities := []ModuleIdentity{
		{Name: "app", Location: "app.py", RawImports: []string{"app.a", "app.b", "missing.thing"}},
		{Name: "app.a", Location: "app/a.py", RawImports: []string{"app.b"}},
		{Name: "app.b", Location: "app/b.py"},
		{Name: "lonely", Location: "lonely.py"},
	}

	g, err := Build(identities, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if g.Stats.TotalNodes != 4 {
		t.Errorf("TotalNodes = %d, want 4", g.Stats.TotalNodes)
	}
	if g.Stats.TotalEdges != 3 {
		t.Errorf("TotalEdges = %d, want 3", g.Stats.TotalEdges)
	}
	if g.Stats.LocalCount != 4 {
		t.Errorf("LocalCount = %d, want 4", g.Stats.LocalCount)
	}
	if g.Stats.UnresolvedImports != 1 {
		t.Errorf("UnresolvedImports = %d, want 1", g.Stats.UnresolvedImports)
	}
	if g.Stats.MaxFanOut != 2 || g.Stats.HotspotModule != "app" {
		t.Errorf("fan-out hotspot = %s (%d), want app (2)", g.Stats.HotspotModule, g.Stats.MaxFanOut)
	}
	if g.Stats.MaxFanIn != 2 {
		t.Errorf("MaxFanIn = %d, want 2 (app.b)", g.Stats.MaxFanIn)
	}
	if g.Stats.ConnectedComponents != 2 {
		t.Errorf("ConnectedComponents = %d, want 2", g.Stats.ConnectedComponents)
	}
}

func TestExternalIdentities(t *testing.T) {
	discovered := []ModuleIdentity{
		{Name: "app", Location: "app.py", RawImports: []string{"os.path.join", "requests", "app.util", ".sibling"}},
		{Name: "app.util", Location: "app/util.py", RawImports: []string{"requests"}},
	}

	externals := ExternalIdentities(discovered)

	want := []string{"os", "requests"}
	if len(externals) != len(want) {
		t.Fatalf("externals = %v, want names %v", externals, want)
	}
	for i, name := range want {
		if externals[i].Name != name {
			t.Errorf("external %d = %s, want %s", i, externals[i].Name, name)
		}
		if externals[i].Location != "" {
			t.Errorf("external %s must not carry a location", name)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	identities := []ModuleIdentity{
		{Name: "a", Location: "a.py", RawImports: []string{"b"}},
		{Name: "b", Location: "b.py", RawImports: []string{"a"}},
	}
	g, err := Build(identities, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(g.Export())
	if err != nil {
		t.Fatal(err)
	}
	var export GraphExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatal(err)
	}

	restored, err := FromExport(export)
	if err != nil {
		t.Fatal(err)
	}
	if restored.NodeCount() != g.NodeCount() {
		t.Errorf("restored %d nodes, want %d", restored.NodeCount(), g.NodeCount())
	}
	if restored.CycleCount() != 1 {
		t.Errorf("restored %d cycles, want 1", restored.CycleCount())
	}
	a, ok := restored.Lookup("a")
	if !ok || !a.HasDependency("b") {
		t.Error("restored graph lost edge a -> b")
	}
	if a.Origin != OriginLocal {
		t.Errorf("restored origin = %s, want local", a.Origin)
	}
}
