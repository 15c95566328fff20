package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// AnalysisInput holds the workflow parameters.
type AnalysisInput struct {
	Language   string
	Path       string
	OutputPath string
	Format     string
	Project    string

	ExcludePatterns   []string
	IncludeThirdParty bool
	IncludeStdlib     bool
	IncludeExternal   bool

	// StoreGraph persists the finished graph to the configured repository.
	StoreGraph bool
}

// AnalysisOutput holds the workflow result.
type AnalysisOutput struct {
	OutputPath        string
	NodeCount         int
	EdgeCount         int
	CycleCount        int
	UnresolvedImports int
	Errors            []string
}

// AnalysisWorkflow orchestrates the scan, extract, build, render and
// store stages as separate activities.
func AnalysisWorkflow(ctx workflow.Context, input AnalysisInput) (*AnalysisOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var scanResult ActivityResult
	if err := workflow.ExecuteActivity(ctx, ScanActivity, input).Get(ctx, &scanResult); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var extractResult ActivityResult
	if err := workflow.ExecuteActivity(ctx, ExtractActivity, input, scanResult.FilesJSON).Get(ctx, &extractResult); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var buildResult ActivityResult
	if err := workflow.ExecuteActivity(ctx, BuildActivity, input, extractResult.IdentitiesJSON).Get(ctx, &buildResult); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	var renderResult ActivityResult
	if err := workflow.ExecuteActivity(ctx, RenderActivity, input, buildResult.GraphJSON).Get(ctx, &renderResult); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if input.StoreGraph {
		var storeResult ActivityResult
		if err := workflow.ExecuteActivity(ctx, StoreActivity, input, buildResult.GraphJSON).Get(ctx, &storeResult); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	}

	return &AnalysisOutput{
		OutputPath:        renderResult.OutputPath,
		NodeCount:         buildResult.NodeCount,
		EdgeCount:         buildResult.EdgeCount,
		CycleCount:        buildResult.CycleCount,
		UnresolvedImports: buildResult.UnresolvedImports,
		Errors:            buildResult.Errors,
	}, nil
}
