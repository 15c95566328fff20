package qualitygate

import (
	"strings"
	"testing"
)

func cleanContext() *EvalContext {
	return &EvalContext{
		NodeCount:    10,
		EdgeCount:    20,
		LocalCount:   8,
		MaxFanOut:    4,
		TotalImports: 20,
	}
}

func TestCycleGate_Pass(t *testing.T) {
	g := NewCycleGate(0, SeverityRequired)
	r, err := g.Evaluate(cleanContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != GatePassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
	if r.Score != 1.0 {
		t.Errorf("expected score 1.0, got %f", r.Score)
	}
}

func TestCycleGate_Fail(t *testing.T) {
	ctx := cleanContext()
	ctx.Cycles = [][]string{{"a", "b", "a"}, {"c", "c"}}

	g := NewCycleGate(0, SeverityRequired)
	r, err := g.Evaluate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != GateFailed {
		t.Errorf("expected failed, got %s", r.Status)
	}
	if len(r.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(r.Details))
	}
	if r.Details[0] != "a -> b -> a" {
		t.Errorf("unexpected detail: %s", r.Details[0])
	}
}

func TestCycleGate_Tolerance(t *testing.T) {
	ctx := cleanContext()
	ctx.Cycles = [][]string{{"a", "b", "a"}}

	g := NewCycleGate(1, SeverityRequired)
	r, _ := g.Evaluate(ctx)
	if r.Status != GatePassed {
		t.Errorf("expected passed with tolerance 1, got %s", r.Status)
	}
}

func TestFanOutGate_Pass(t *testing.T) {
	g := NewFanOutGate(10, SeverityAdvisory)
	r, _ := g.Evaluate(cleanContext())
	if r.Status != GatePassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
}

func TestFanOutGate_Fail(t *testing.T) {
	ctx := cleanContext()
	ctx.MaxFanOut = 15
	ctx.HotspotModule = "app.core"

	g := NewFanOutGate(10, SeverityAdvisory)
	r, _ := g.Evaluate(ctx)
	if r.Status != GateFailed {
		t.Errorf("expected failed, got %s", r.Status)
	}
	if !strings.Contains(r.Message, "app.core") {
		t.Errorf("expected hotspot module in message, got %s", r.Message)
	}
	if r.Score != 0 {
		t.Errorf("expected clamped score 0, got %f", r.Score)
	}
}

func TestFanOutGate_NoLimitSkips(t *testing.T) {
	g := NewFanOutGate(0, SeverityAdvisory)
	r, _ := g.Evaluate(cleanContext())
	if r.Status != GateSkipped {
		t.Errorf("expected skipped, got %s", r.Status)
	}
}

func TestUnresolvedGate_Pass(t *testing.T) {
	ctx := cleanContext()
	ctx.UnresolvedImports = 2

	g := NewUnresolvedGate(0.5, SeverityAdvisory)
	r, _ := g.Evaluate(ctx)
	if r.Status != GatePassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
	if r.Score != 0.9 {
		t.Errorf("expected score 0.9, got %f", r.Score)
	}
}

func TestUnresolvedGate_Fail(t *testing.T) {
	ctx := cleanContext()
	ctx.UnresolvedImports = 15

	g := NewUnresolvedGate(0.5, SeverityRequired)
	r, _ := g.Evaluate(ctx)
	if r.Status != GateFailed {
		t.Errorf("expected failed, got %s", r.Status)
	}
}

func TestUnresolvedGate_NoImportsSkips(t *testing.T) {
	ctx := cleanContext()
	ctx.TotalImports = 0

	g := NewUnresolvedGate(0.5, SeverityAdvisory)
	r, _ := g.Evaluate(ctx)
	if r.Status != GateSkipped {
		t.Errorf("expected skipped, got %s", r.Status)
	}
}

func TestErrorGate(t *testing.T) {
	ctx := cleanContext()
	g := NewErrorGate(0, SeverityCritical)

	r, _ := g.Evaluate(ctx)
	if r.Status != GatePassed {
		t.Errorf("expected passed, got %s", r.Status)
	}

	ctx.Errors = []string{"broken.py: parse error"}
	r, _ = g.Evaluate(ctx)
	if r.Status != GateFailed {
		t.Errorf("expected failed, got %s", r.Status)
	}
	if len(r.Details) != 1 {
		t.Errorf("expected error details, got %d", len(r.Details))
	}
}

func TestPipeline_AllPass(t *testing.T) {
	p := NewPipeline(
		NewErrorGate(0, SeverityCritical),
		NewCycleGate(0, SeverityRequired),
	)

	result := p.Run(cleanContext())
	if result.Status != GatePassed {
		t.Errorf("expected passed, got %s", result.Status)
	}
	if result.PassedCount != 2 {
		t.Errorf("expected 2 passed, got %d", result.PassedCount)
	}
}

func TestPipeline_RequiredFailure(t *testing.T) {
	ctx := cleanContext()
	ctx.Cycles = [][]string{{"a", "b", "a"}}

	p := NewPipeline(
		NewCycleGate(0, SeverityRequired),
		NewErrorGate(0, SeverityCritical),
	)

	result := p.Run(ctx)
	if result.Status != GateFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}
	// Required failure does not abort, later gates still run
	if result.SkippedCount != 0 {
		t.Errorf("expected no skipped gates, got %d", result.SkippedCount)
	}
	if result.PassedCount != 1 {
		t.Errorf("expected 1 passed, got %d", result.PassedCount)
	}
}

func TestPipeline_CriticalAborts(t *testing.T) {
	ctx := cleanContext()
	ctx.Errors = []string{"boom"}

	p := NewPipeline(
		NewErrorGate(0, SeverityCritical),
		NewCycleGate(0, SeverityRequired),
	)

	result := p.Run(ctx)
	if result.Status != GateFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}
	if result.SkippedCount != 1 {
		t.Errorf("expected 1 skipped after critical failure, got %d", result.SkippedCount)
	}
}

func TestPipeline_AdvisoryDoesNotBlock(t *testing.T) {
	ctx := cleanContext()
	ctx.MaxFanOut = 100

	p := NewPipeline(NewFanOutGate(10, SeverityAdvisory))
	result := p.Run(ctx)
	if result.Status != GatePassed {
		t.Errorf("expected passed despite advisory failure, got %s", result.Status)
	}
	if result.FailedCount != 1 {
		t.Errorf("expected 1 failed, got %d", result.FailedCount)
	}
}

func TestBuildPipeline_Defaults(t *testing.T) {
	p := BuildPipeline(nil)

	ctx := cleanContext()
	ctx.UnresolvedImports = 3

	result := p.Run(ctx)
	if result.Status != GatePassed {
		t.Errorf("expected passed on clean context, got %s: %s", result.Status, result.Summary)
	}
	// errors + cycles + unresolved
	if len(result.Gates) != 3 {
		t.Errorf("expected 3 gates from defaults, got %d", len(result.Gates))
	}
}

func TestBuildPipeline_FanOutEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFanOut = 5

	p := BuildPipeline(cfg)
	result := p.Run(cleanContext())
	if len(result.Gates) != 4 {
		t.Errorf("expected 4 gates, got %d", len(result.Gates))
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]GateSeverity{
		"critical": SeverityCritical,
		"required": SeverityRequired,
		"advisory": SeverityAdvisory,
		"bogus":    SeverityRequired,
	}
	for in, want := range cases {
		if got := parseSeverity(in); got != want {
			t.Errorf("parseSeverity(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestFormatReport(t *testing.T) {
	ctx := cleanContext()
	ctx.Cycles = [][]string{{"a", "b", "a"}}

	p := NewPipeline(NewCycleGate(0, SeverityRequired))
	report := FormatReport(p.Run(ctx))

	if !strings.Contains(report, "Quality Gate Report") {
		t.Error("expected report header")
	}
	if !strings.Contains(report, "a -> b -> a") {
		t.Error("expected cycle detail in report")
	}
	if !strings.Contains(report, "FAILED") {
		t.Error("expected FAILED result")
	}
}
