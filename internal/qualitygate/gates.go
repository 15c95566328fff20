package qualitygate

import (
	"fmt"
	"strings"
)

// CycleGate checks that the number of circular dependencies stays within a limit.
type CycleGate struct {
	MaxCycles int
	severity  GateSeverity
}

func NewCycleGate(maxCycles int, severity GateSeverity) *CycleGate {
	return &CycleGate{MaxCycles: maxCycles, severity: severity}
}

func (g *CycleGate) Name() string           { return "cycles" }
func (g *CycleGate) Severity() GateSeverity { return g.severity }
func (g *CycleGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	cycleCount := len(ctx.Cycles)
	if cycleCount <= g.MaxCycles {
		r.Status = GatePassed
		r.Score = 1.0
		r.Message = fmt.Sprintf("Cycle count %d within limit %d", cycleCount, g.MaxCycles)
	} else {
		r.Status = GateFailed
		r.Score = 0.0
		r.Message = fmt.Sprintf("Cycle count %d exceeds limit %d", cycleCount, g.MaxCycles)
		for _, cycle := range ctx.Cycles {
			r.Details = append(r.Details, strings.Join(cycle, " -> "))
		}
	}
	return r, nil
}

// FanOutGate checks that no module depends on too many others.
type FanOutGate struct {
	MaxFanOut int
	severity  GateSeverity
}

func NewFanOutGate(maxFanOut int, severity GateSeverity) *FanOutGate {
	return &FanOutGate{MaxFanOut: maxFanOut, severity: severity}
}

func (g *FanOutGate) Name() string           { return "fan_out" }
func (g *FanOutGate) Severity() GateSeverity { return g.severity }
func (g *FanOutGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	if g.MaxFanOut <= 0 {
		r.Status = GateSkipped
		r.Message = "No fan-out limit configured"
		return r, nil
	}

	usage := float64(ctx.MaxFanOut) / float64(g.MaxFanOut)
	r.Score = 1.0 - usage
	if r.Score < 0 {
		r.Score = 0
	}

	if ctx.MaxFanOut <= g.MaxFanOut {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("Max fan-out %d within limit %d", ctx.MaxFanOut, g.MaxFanOut)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("Module %s has fan-out %d, exceeds limit %d",
			ctx.HotspotModule, ctx.MaxFanOut, g.MaxFanOut)
	}
	return r, nil
}

// UnresolvedGate checks that enough raw imports resolved to known modules.
type UnresolvedGate struct {
	MaxUnresolvedRate float64
	severity          GateSeverity
}

func NewUnresolvedGate(maxRate float64, severity GateSeverity) *UnresolvedGate {
	return &UnresolvedGate{MaxUnresolvedRate: maxRate, severity: severity}
}

func (g *UnresolvedGate) Name() string           { return "unresolved" }
func (g *UnresolvedGate) Severity() GateSeverity { return g.severity }
func (g *UnresolvedGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:      g.Name(),
		Severity:  g.severity,
		Threshold: g.MaxUnresolvedRate,
	}

	if ctx.TotalImports == 0 {
		r.Status = GateSkipped
		r.Message = "No imports to evaluate"
		return r, nil
	}

	rate := float64(ctx.UnresolvedImports) / float64(ctx.TotalImports)
	r.Score = 1.0 - rate

	if rate <= g.MaxUnresolvedRate {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("Unresolved rate %.1f%% within limit %.1f%% (%d/%d)",
			rate*100, g.MaxUnresolvedRate*100, ctx.UnresolvedImports, ctx.TotalImports)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("Unresolved rate %.1f%% exceeds limit %.1f%% (%d/%d)",
			rate*100, g.MaxUnresolvedRate*100, ctx.UnresolvedImports, ctx.TotalImports)
	}
	return r, nil
}

// ErrorGate checks that the analysis produced no more than the allowed errors.
type ErrorGate struct {
	MaxErrors int
	severity  GateSeverity
}

func NewErrorGate(maxErrors int, severity GateSeverity) *ErrorGate {
	return &ErrorGate{MaxErrors: maxErrors, severity: severity}
}

func (g *ErrorGate) Name() string           { return "errors" }
func (g *ErrorGate) Severity() GateSeverity { return g.severity }
func (g *ErrorGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	errorCount := len(ctx.Errors)
	if errorCount <= g.MaxErrors {
		r.Status = GatePassed
		r.Score = 1.0
		r.Message = fmt.Sprintf("Error count %d within limit %d", errorCount, g.MaxErrors)
	} else {
		r.Status = GateFailed
		r.Score = 0.0
		r.Message = fmt.Sprintf("Error count %d exceeds limit %d", errorCount, g.MaxErrors)
		r.Details = ctx.Errors
	}
	return r, nil
}
