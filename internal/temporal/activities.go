package temporal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
	"github.com/efebarandurmaz/depscope/internal/graphstore"
	"github.com/efebarandurmaz/depscope/internal/plugins"
	"github.com/efebarandurmaz/depscope/internal/scan"
)

// ActivityResult is the serializable result passed between activities.
type ActivityResult struct {
	FilesJSON      string
	IdentitiesJSON string
	GraphJSON      string
	OutputPath     string

	NodeCount         int
	EdgeCount         int
	CycleCount        int
	UnresolvedImports int
	Errors            []string
}

// Dependencies holds shared resources injected into activities.
type Dependencies struct {
	Registry *plugins.Registry
	Repo     graphstore.Repository
}

var deps *Dependencies

// SetDependencies injects shared resources (called during worker setup).
func SetDependencies(d *Dependencies) {
	deps = d
}

func ScanActivity(ctx context.Context, input AnalysisInput) (ActivityResult, error) {
	src, err := deps.Registry.Source(input.Language)
	if err != nil {
		return ActivityResult{}, err
	}

	files, err := scan.Project(input.Path, scan.ForPlugin(src, input.ExcludePatterns))
	if err != nil {
		return ActivityResult{}, err
	}

	filesJSON, err := json.Marshal(files)
	if err != nil {
		return ActivityResult{}, fmt.Errorf("marshal files: %w", err)
	}
	return ActivityResult{FilesJSON: string(filesJSON)}, nil
}

func ExtractActivity(ctx context.Context, input AnalysisInput, filesJSON string) (ActivityResult, error) {
	var files []plugins.SourceFile
	if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
		return ActivityResult{}, err
	}

	src, err := deps.Registry.Source(input.Language)
	if err != nil {
		return ActivityResult{}, err
	}

	identities, err := src.Extract(ctx, files)
	if err != nil {
		return ActivityResult{}, err
	}

	out, err := json.Marshal(identities)
	if err != nil {
		return ActivityResult{}, fmt.Errorf("marshal identities: %w", err)
	}
	return ActivityResult{IdentitiesJSON: string(out)}, nil
}

func BuildActivity(ctx context.Context, input AnalysisInput, identitiesJSON string) (ActivityResult, error) {
	var identities []depgraph.ModuleIdentity
	if err := json.Unmarshal([]byte(identitiesJSON), &identities); err != nil {
		return ActivityResult{}, err
	}

	if input.IncludeExternal {
		identities = append(identities, depgraph.ExternalIdentities(identities)...)
	}

	policy := depgraph.FilterPolicy{
		IncludeThirdParty: input.IncludeThirdParty,
		IncludeStdlib:     input.IncludeStdlib,
		ExcludePatterns:   input.ExcludePatterns,
	}
	g, err := depgraph.Build(identities, depgraph.BuildOptions{Policy: &policy})
	if err != nil {
		return ActivityResult{}, err
	}

	graphJSON, err := json.Marshal(g.Export())
	if err != nil {
		return ActivityResult{}, fmt.Errorf("marshal graph: %w", err)
	}

	return ActivityResult{
		GraphJSON:         string(graphJSON),
		NodeCount:         g.Stats.TotalNodes,
		EdgeCount:         g.Stats.TotalEdges,
		CycleCount:        g.Stats.CycleCount,
		UnresolvedImports: g.Stats.UnresolvedImports,
	}, nil
}

func RenderActivity(ctx context.Context, input AnalysisInput, graphJSON string) (ActivityResult, error) {
	g, err := graphFromJSON(graphJSON)
	if err != nil {
		return ActivityResult{}, err
	}

	renderer, err := deps.Registry.Renderer(input.Format)
	if err != nil {
		return ActivityResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(input.OutputPath), 0o755); err != nil {
		return ActivityResult{}, err
	}
	f, err := os.Create(input.OutputPath)
	if err != nil {
		return ActivityResult{}, err
	}
	defer f.Close()

	if err := renderer.Render(g, f); err != nil {
		return ActivityResult{}, fmt.Errorf("render %s: %w", input.Format, err)
	}
	return ActivityResult{OutputPath: input.OutputPath}, nil
}

func StoreActivity(ctx context.Context, input AnalysisInput, graphJSON string) (ActivityResult, error) {
	if deps.Repo == nil {
		return ActivityResult{}, fmt.Errorf("no graph repository configured")
	}

	g, err := graphFromJSON(graphJSON)
	if err != nil {
		return ActivityResult{}, err
	}

	if err := deps.Repo.StoreGraph(ctx, input.Project, g); err != nil {
		return ActivityResult{}, err
	}
	return ActivityResult{}, nil
}

func graphFromJSON(graphJSON string) (*depgraph.Graph, error) {
	var export depgraph.GraphExport
	if err := json.Unmarshal([]byte(graphJSON), &export); err != nil {
		return nil, err
	}
	return depgraph.FromExport(export)
}
