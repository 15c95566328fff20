package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/efebarandurmaz/depscope/internal/cache"
	"github.com/efebarandurmaz/depscope/internal/config"
	"github.com/efebarandurmaz/depscope/internal/depgraph"
	"github.com/efebarandurmaz/depscope/internal/graphstore"
	neo4jstore "github.com/efebarandurmaz/depscope/internal/graphstore/neo4j"
	"github.com/efebarandurmaz/depscope/internal/metrics"
	"github.com/efebarandurmaz/depscope/internal/observability"
	"github.com/efebarandurmaz/depscope/internal/plugins"
	pythonplugin "github.com/efebarandurmaz/depscope/internal/plugins/source/python"
	"github.com/efebarandurmaz/depscope/internal/qualitygate"
	"github.com/efebarandurmaz/depscope/internal/render"
	"github.com/efebarandurmaz/depscope/internal/scan"
)

func main() {
	var (
		inputPath    string
		outputPath   string
		format       string
		language     string
		excludes     []string
		noThirdParty bool
		noStdlib     bool
		noExternal   bool
		configPath   string
		jsonReport   bool
		storeGraph   bool
		project      string
	)

	rootCmd := &cobra.Command{
		Use:   "depscope",
		Short: "Static import dependency analyzer",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan a source tree and build its dependency graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyzeOptions{
				ConfigPath:   configPath,
				Language:     language,
				InputPath:    inputPath,
				OutputPath:   outputPath,
				Format:       format,
				Excludes:     excludes,
				NoThirdParty: noThirdParty,
				NoStdlib:     noStdlib,
				NoExternal:   noExternal,
				JSONReport:   jsonReport,
				StoreGraph:   storeGraph,
				Project:      project,
			}
			return runAnalyze(opts)
		},
	}

	analyzeCmd.Flags().StringVar(&inputPath, "path", "", "Input path (file or directory)")
	analyzeCmd.Flags().StringVar(&outputPath, "output", "", "Output file (default: stdout)")
	analyzeCmd.Flags().StringVar(&format, "format", "", "Output format: dot, mermaid, json, html")
	analyzeCmd.Flags().StringVar(&language, "language", "python", "Source language")
	analyzeCmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Glob patterns to exclude")
	analyzeCmd.Flags().BoolVar(&noThirdParty, "no-third-party", false, "Drop third-party modules from the graph")
	analyzeCmd.Flags().BoolVar(&noStdlib, "no-stdlib", false, "Drop standard library modules from the graph")
	analyzeCmd.Flags().BoolVar(&noExternal, "no-external", false, "Do not synthesize nodes for unresolved imports")
	analyzeCmd.Flags().StringVar(&configPath, "config", "configs/depscope.yaml", "Config file path")
	analyzeCmd.Flags().BoolVar(&jsonReport, "json", false, "Output metrics as JSON")
	analyzeCmd.Flags().BoolVar(&storeGraph, "store", false, "Persist the graph to the configured Neo4j instance")
	analyzeCmd.Flags().StringVar(&project, "project", "", "Project name used when storing the graph")
	_ = analyzeCmd.MarkFlagRequired("path")

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List available output formats",
		Run: func(cmd *cobra.Command, args []string) {
			registry := buildRegistry(nil)
			fmt.Println("Available output formats:")
			for _, f := range registry.Formats() {
				fmt.Printf("  %s\n", f)
			}
		},
	}

	stdlibCmd := &cobra.Command{
		Use:   "stdlib",
		Short: "List module names classified as standard library",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range depgraph.StdlibModules() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(analyzeCmd, formatsCmd, stdlibCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type analyzeOptions struct {
	ConfigPath   string
	Language     string
	InputPath    string
	OutputPath   string
	Format       string
	Excludes     []string
	NoThirdParty bool
	NoStdlib     bool
	NoExternal   bool
	JSONReport   bool
	StoreGraph   bool
	Project      string
}

func runAnalyze(opts analyzeOptions) error {
	m := metrics.New()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		cfg = config.Default()
	}
	setupLogging(cfg.Log)

	ctx := context.Background()

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:  "depscope",
		Environment:  cfg.Tracing.Environment,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer tp.Shutdown(ctx)

	format := opts.Format
	if format == "" {
		format = cfg.Analysis.Format
	}
	excludes := append(cfg.Analysis.ExcludePatterns, opts.Excludes...)

	registry := buildRegistry(cfg)

	src, err := registry.Source(opts.Language)
	if err != nil {
		return err
	}
	renderer, err := registry.Renderer(format)
	if err != nil {
		return err
	}

	// Scan
	ctx, scanSpan := observability.StartScanSpan(ctx, opts.InputPath)
	start := time.Now()
	files, err := scan.Project(opts.InputPath, scan.ForPlugin(src, excludes))
	if err != nil {
		observability.RecordError(scanSpan, err)
		scanSpan.End()
		return fmt.Errorf("scan: %w", err)
	}
	observability.RecordScanResult(scanSpan, len(files))
	scanSpan.End()
	m.AddStage("scan", time.Since(start), 0)
	slog.Info("Scanned source tree", "root", opts.InputPath, "files", len(files))

	totalBytes := 0
	for _, f := range files {
		totalBytes += len(f.Content)
	}

	// Extract
	ctx, extractSpan := observability.StartExtractSpan(ctx, opts.Language, len(files))
	start = time.Now()
	identities, err := src.Extract(ctx, files)
	if err != nil {
		observability.RecordError(extractSpan, err)
		extractSpan.End()
		return fmt.Errorf("extract: %w", err)
	}
	m.CollectSource(opts.Language, opts.InputPath, len(files), totalBytes, identities)
	observability.RecordExtractResult(extractSpan, m.Source.ModuleCount, m.Source.ImportCount)
	extractSpan.End()
	m.AddStage("extract", time.Since(start), 0)
	slog.Info("Extracted imports", "modules", m.Source.ModuleCount, "imports", m.Source.ImportCount)

	if !opts.NoExternal {
		identities = append(identities, depgraph.ExternalIdentities(identities)...)
	}

	// Build
	ctx, buildSpan := observability.StartBuildSpan(ctx, len(identities))
	start = time.Now()
	policy := depgraph.FilterPolicy{
		IncludeThirdParty: cfg.Analysis.IncludeThirdParty && !opts.NoThirdParty,
		IncludeStdlib:     cfg.Analysis.IncludeStdlib && !opts.NoStdlib,
		ExcludePatterns:   excludes,
	}
	g, err := depgraph.Build(identities, depgraph.BuildOptions{Policy: &policy})
	if err != nil {
		observability.RecordError(buildSpan, err)
		buildSpan.End()
		return fmt.Errorf("build: %w", err)
	}
	m.CollectGraph(g)
	observability.RecordBuildResult(buildSpan, g.Stats.TotalNodes, g.Stats.TotalEdges,
		g.Stats.CycleCount, g.Stats.UnresolvedImports)
	buildSpan.End()
	m.AddStage("build", time.Since(start), 0)
	slog.Info("Built dependency graph",
		"nodes", g.Stats.TotalNodes, "edges", g.Stats.TotalEdges, "cycles", g.Stats.CycleCount)

	// Render
	ctx, renderSpan := observability.StartRenderSpan(ctx, format)
	start = time.Now()
	if err := writeOutput(renderer, g, opts.OutputPath); err != nil {
		observability.RecordError(renderSpan, err)
		renderSpan.End()
		return fmt.Errorf("render: %w", err)
	}
	renderSpan.End()
	m.AddStage("render", time.Since(start), 0)
	if opts.OutputPath != "" {
		slog.Info("Wrote output", "path", opts.OutputPath, "format", format)
	}

	// Store
	if opts.StoreGraph {
		if err := persistGraph(ctx, cfg, opts.Project, g, m); err != nil {
			return err
		}
	}

	m.Finish(nil)

	if opts.JSONReport {
		data, _ := m.JSON()
		fmt.Println(string(data))
	} else if opts.OutputPath != "" {
		m.PrintSummary(os.Stdout)
	}

	// Quality gates
	if cfg.Gates.Enabled {
		pipeline := qualitygate.BuildPipeline(&cfg.Gates)
		result := pipeline.Run(&qualitygate.EvalContext{
			NodeCount:         g.Stats.TotalNodes,
			EdgeCount:         g.Stats.TotalEdges,
			LocalCount:        g.Stats.LocalCount,
			Cycles:            g.Cycles,
			MaxFanOut:         g.Stats.MaxFanOut,
			HotspotModule:     g.Stats.HotspotModule,
			UnresolvedImports: g.Stats.UnresolvedImports,
			TotalImports:      m.Source.ImportCount,
		})
		fmt.Fprint(os.Stderr, qualitygate.FormatReport(result))
		if result.Status == qualitygate.GateFailed {
			return fmt.Errorf("quality gates failed: %s", result.Summary)
		}
	}

	return nil
}

func buildRegistry(cfg *config.Config) *plugins.Registry {
	registry := plugins.NewRegistry()

	cacheSize := 0
	if cfg != nil {
		cacheSize = cfg.Analysis.CacheSize
	}
	var srcOpts []pythonplugin.Option
	if c, err := cache.NewExtractionCache(cacheSize); err == nil {
		srcOpts = append(srcOpts, pythonplugin.WithCache(c))
	}
	registry.RegisterSource(pythonplugin.New(srcOpts...))

	registry.RegisterRenderer(render.DOT{})
	registry.RegisterRenderer(render.Mermaid{})
	registry.RegisterRenderer(render.JSON{})
	registry.RegisterRenderer(render.HTML{})
	return registry
}

func writeOutput(renderer plugins.Renderer, g *depgraph.Graph, outputPath string) error {
	if outputPath == "" {
		return renderer.Render(g, os.Stdout)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return renderer.Render(g, f)
}

func persistGraph(ctx context.Context, cfg *config.Config, project string, g *depgraph.Graph, m *metrics.AnalysisMetrics) error {
	if cfg.Graph.URI == "" {
		return fmt.Errorf("graph store requested but graph.uri is not configured")
	}
	if project == "" {
		project = cfg.Graph.Project
	}
	if project == "" {
		project = "default"
	}

	ctx, span := observability.StartStoreSpan(ctx, project)
	defer span.End()
	start := time.Now()

	var repo graphstore.Repository
	repo, err := neo4jstore.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
	if err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("graph store: %w", err)
	}
	defer repo.Close(ctx)

	if err := repo.StoreGraph(ctx, project, g); err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("store graph: %w", err)
	}
	m.AddStage("store", time.Since(start), 0)
	slog.Info("Stored graph", "project", project, "uri", cfg.Graph.URI)
	return nil
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
