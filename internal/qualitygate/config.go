package qualitygate

import "fmt"

// GateConfig defines the configuration for quality gates.
type GateConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	MaxCycles     int    `mapstructure:"max_cycles" json:"max_cycles"`
	CycleSeverity string `mapstructure:"cycle_severity" json:"cycle_severity"`

	MaxFanOut      int    `mapstructure:"max_fan_out" json:"max_fan_out"`
	FanOutSeverity string `mapstructure:"fan_out_severity" json:"fan_out_severity"`

	MaxUnresolvedRate  float64 `mapstructure:"max_unresolved_rate" json:"max_unresolved_rate"`
	UnresolvedSeverity string  `mapstructure:"unresolved_severity" json:"unresolved_severity"`

	MaxErrors     int    `mapstructure:"max_errors" json:"max_errors"`
	ErrorSeverity string `mapstructure:"error_severity" json:"error_severity"`
}

// DefaultConfig returns sensible default gate configuration.
func DefaultConfig() *GateConfig {
	return &GateConfig{
		Enabled:            true,
		MaxCycles:          0,
		CycleSeverity:      "required",
		MaxFanOut:          0, // disabled by default
		FanOutSeverity:     "advisory",
		MaxUnresolvedRate:  0.5,
		UnresolvedSeverity: "advisory",
		MaxErrors:          0,
		ErrorSeverity:      "critical",
	}
}

// parseSeverity converts a string to GateSeverity.
func parseSeverity(s string) GateSeverity {
	switch s {
	case "critical":
		return SeverityCritical
	case "required":
		return SeverityRequired
	case "advisory":
		return SeverityAdvisory
	default:
		return SeverityRequired
	}
}

// BuildPipeline constructs a gate pipeline from configuration.
func BuildPipeline(cfg *GateConfig) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	p := NewPipeline()

	if cfg.MaxErrors >= 0 {
		p.AddGate(NewErrorGate(cfg.MaxErrors, parseSeverity(cfg.ErrorSeverity)))
	}

	p.AddGate(NewCycleGate(cfg.MaxCycles, parseSeverity(cfg.CycleSeverity)))

	if cfg.MaxFanOut > 0 {
		p.AddGate(NewFanOutGate(cfg.MaxFanOut, parseSeverity(cfg.FanOutSeverity)))
	}

	if cfg.MaxUnresolvedRate > 0 {
		p.AddGate(NewUnresolvedGate(cfg.MaxUnresolvedRate, parseSeverity(cfg.UnresolvedSeverity)))
	}

	return p
}

// FormatReport returns a human-readable quality gate report.
func FormatReport(result *PipelineResult) string {
	var s string
	s += "╔══════════════════════════════════════════╗\n"
	s += "║        Quality Gate Report               ║\n"
	s += "╠══════════════════════════════════════════╣\n"

	for _, gr := range result.Gates {
		icon := "✓"
		switch gr.Status {
		case GateFailed:
			icon = "✗"
		case GateSkipped:
			icon = "○"
		case GateWarning:
			icon = "⚠"
		}

		severity := ""
		switch gr.Severity {
		case SeverityCritical:
			severity = "[CRITICAL]"
		case SeverityRequired:
			severity = "[REQUIRED]"
		case SeverityAdvisory:
			severity = "[ADVISORY]"
		}

		s += fmt.Sprintf("║ %s %-12s %-10s %s\n", icon, gr.Name, severity, gr.Message)
		for _, d := range gr.Details {
			s += fmt.Sprintf("║   → %s\n", d)
		}
	}

	s += "╠══════════════════════════════════════════╣\n"
	status := "PASSED"
	if result.Status == GateFailed {
		status = "FAILED"
	}
	s += fmt.Sprintf("║ Result: %s (%s)\n", status, result.Summary)
	s += "╚══════════════════════════════════════════╝\n"

	return s
}
