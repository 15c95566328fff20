package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
)

// AnalysisMetrics collects statistics for a full analysis run.
type AnalysisMetrics struct {
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at,omitempty"`
	Duration   time.Duration  `json:"duration_ms,omitempty"`
	Source     SourceMetrics  `json:"source"`
	Graph      GraphMetrics   `json:"graph"`
	Stages     []StageMetrics `json:"stages"`
	Errors     []string       `json:"errors,omitempty"`
}

type SourceMetrics struct {
	Language    string `json:"language"`
	Root        string `json:"root"`
	FileCount   int    `json:"file_count"`
	ModuleCount int    `json:"module_count"`
	ImportCount int    `json:"import_count"`
	TotalBytes  int    `json:"total_bytes"`
}

type GraphMetrics struct {
	Nodes             int    `json:"nodes"`
	Edges             int    `json:"edges"`
	Local             int    `json:"local"`
	ThirdParty        int    `json:"third_party"`
	Stdlib            int    `json:"stdlib"`
	Unresolved        int    `json:"unresolved"`
	Cycles            int    `json:"cycles"`
	Components        int    `json:"components"`
	MaxFanOut         int    `json:"max_fan_out"`
	HotspotModule     string `json:"hotspot_module,omitempty"`
}

type StageMetrics struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration_ms"`
	Errors   int           `json:"errors"`
}

// New starts tracking an analysis run.
func New() *AnalysisMetrics {
	return &AnalysisMetrics{StartedAt: time.Now()}
}

// CollectSource records scan and extraction side metrics.
func (m *AnalysisMetrics) CollectSource(lang, root string, fileCount, totalBytes int, identities []depgraph.ModuleIdentity) {
	m.Source.Language = lang
	m.Source.Root = root
	m.Source.FileCount = fileCount
	m.Source.TotalBytes = totalBytes
	m.Source.ModuleCount = len(identities)
	for _, id := range identities {
		m.Source.ImportCount += len(id.RawImports)
	}
}

// CollectGraph records graph-side metrics from the built graph.
func (m *AnalysisMetrics) CollectGraph(g *depgraph.Graph) {
	m.Graph.Nodes = g.Stats.TotalNodes
	m.Graph.Edges = g.Stats.TotalEdges
	m.Graph.Local = g.Stats.LocalCount
	m.Graph.ThirdParty = g.Stats.ThirdPartyCount
	m.Graph.Stdlib = g.Stats.StdlibCount
	m.Graph.Unresolved = g.Stats.UnresolvedImports
	m.Graph.Cycles = g.Stats.CycleCount
	m.Graph.Components = g.Stats.ConnectedComponents
	m.Graph.MaxFanOut = g.Stats.MaxFanOut
	m.Graph.HotspotModule = g.Stats.HotspotModule
}

// AddStage records a single pipeline stage's timing and status.
func (m *AnalysisMetrics) AddStage(name string, d time.Duration, errCount int) {
	m.Stages = append(m.Stages, StageMetrics{
		Name:     name,
		Duration: d,
		Errors:   errCount,
	})
}

// Finish marks the analysis as complete.
func (m *AnalysisMetrics) Finish(errs []string) {
	m.FinishedAt = time.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
	m.Errors = errs
}

// PrintSummary writes a human-readable summary.
func (m *AnalysisMetrics) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n╔══════════════════════════════════════╗\n")
	fmt.Fprintf(w, "║       DEPSCOPE ANALYSIS REPORT       ║\n")
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ Duration:    %-23s║\n", m.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ SOURCE (%s)\n", m.Source.Language)
	fmt.Fprintf(w, "║   Root:        %s\n", m.Source.Root)
	fmt.Fprintf(w, "║   Files:       %d\n", m.Source.FileCount)
	fmt.Fprintf(w, "║   Modules:     %d\n", m.Source.ModuleCount)
	fmt.Fprintf(w, "║   Imports:     %d\n", m.Source.ImportCount)
	fmt.Fprintf(w, "║   Total Size:  %s\n", formatBytes(m.Source.TotalBytes))
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ GRAPH\n")
	fmt.Fprintf(w, "║   Nodes:       %d (%d local, %d third-party, %d stdlib)\n",
		m.Graph.Nodes, m.Graph.Local, m.Graph.ThirdParty, m.Graph.Stdlib)
	fmt.Fprintf(w, "║   Edges:       %d\n", m.Graph.Edges)
	fmt.Fprintf(w, "║   Unresolved:  %d\n", m.Graph.Unresolved)
	fmt.Fprintf(w, "║   Cycles:      %d\n", m.Graph.Cycles)
	fmt.Fprintf(w, "║   Components:  %d\n", m.Graph.Components)
	if m.Graph.MaxFanOut > 0 {
		fmt.Fprintf(w, "║   Hotspot:     %s (%d deps)\n", m.Graph.HotspotModule, m.Graph.MaxFanOut)
	}
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ STAGES\n")
	for _, s := range m.Stages {
		status := "OK"
		if s.Errors > 0 {
			status = fmt.Sprintf("%d errors", s.Errors)
		}
		fmt.Fprintf(w, "║   %-14s %8s  %s\n", s.Name, s.Duration.Round(time.Millisecond), status)
	}
	if len(m.Errors) > 0 {
		fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
		fmt.Fprintf(w, "║ ERRORS\n")
		for _, e := range m.Errors {
			fmt.Fprintf(w, "║   • %s\n", e)
		}
	}
	fmt.Fprintf(w, "╚══════════════════════════════════════╝\n")
}

// JSON returns the metrics as formatted JSON.
func (m *AnalysisMetrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func formatBytes(b int) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
