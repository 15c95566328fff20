// Package observability provides OpenTelemetry tracing for depscope.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the name used for the depscope tracer.
	TracerName = "github.com/efebarandurmaz/depscope"
)

// TracingConfig configures the OpenTelemetry tracing.
type TracingConfig struct {
	// ServiceName is the name of the service (default: "depscope")
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment is the deployment environment (dev, staging, prod)
	Environment string

	// OTLPEndpoint is the OTLP gRPC endpoint (e.g., "localhost:4317")
	// If empty, tracing is disabled.
	OTLPEndpoint string

	// SampleRate is the trace sampling rate (0.0 to 1.0, default: 1.0)
	SampleRate float64
}

// DefaultTracingConfig returns a default tracing configuration.
func DefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		ServiceName:    "depscope",
		ServiceVersion: "0.1.0",
		Environment:    "development",
		SampleRate:     1.0,
	}
}

// TracerProvider wraps the OpenTelemetry tracer provider.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing initializes OpenTelemetry tracing.
// Returns a no-op tracer if OTLPEndpoint is empty.
func InitTracing(ctx context.Context, cfg *TracingConfig) (*TracerProvider, error) {
	if cfg == nil {
		cfg = DefaultTracingConfig()
	}

	if cfg.OTLPEndpoint == "" {
		return &TracerProvider{
			tracer: otel.Tracer(TracerName),
		}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(), // Use TLS in production
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	if cfg.SampleRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else if cfg.SampleRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &TracerProvider{
		provider: provider,
		tracer:   provider.Tracer(TracerName),
	}, nil
}

// Shutdown gracefully shuts down the tracer provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider != nil {
		return tp.provider.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the underlying tracer.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// SpanKind constants for depscope pipeline stages.
const (
	SpanKindScan    = "scan"
	SpanKindExtract = "extract"
	SpanKindBuild   = "build"
	SpanKindRender  = "render"
	SpanKindStore   = "store"
)

// StartScanSpan starts a span for a source tree scan.
func StartScanSpan(ctx context.Context, root string) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, "scan",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("depscope.span.kind", SpanKindScan),
			attribute.String("scan.root", root),
		),
	)
}

// RecordScanResult records scan output counts on a span.
func RecordScanResult(span trace.Span, fileCount int) {
	span.SetAttributes(attribute.Int("scan.file_count", fileCount))
}

// StartExtractSpan starts a span for import extraction.
func StartExtractSpan(ctx context.Context, language string, fileCount int) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, fmt.Sprintf("extract.%s", language),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("depscope.span.kind", SpanKindExtract),
			attribute.String("extract.language", language),
			attribute.Int("extract.file_count", fileCount),
		),
	)
}

// RecordExtractResult records extraction output counts on a span.
func RecordExtractResult(span trace.Span, moduleCount, importCount int) {
	span.SetAttributes(
		attribute.Int("extract.module_count", moduleCount),
		attribute.Int("extract.import_count", importCount),
	)
}

// StartBuildSpan starts a span for graph construction.
func StartBuildSpan(ctx context.Context, moduleCount int) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, "build",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("depscope.span.kind", SpanKindBuild),
			attribute.Int("build.module_count", moduleCount),
		),
	)
}

// RecordBuildResult records graph stats on a span.
func RecordBuildResult(span trace.Span, nodeCount, edgeCount, cycleCount, unresolved int) {
	span.SetAttributes(
		attribute.Int("build.node_count", nodeCount),
		attribute.Int("build.edge_count", edgeCount),
		attribute.Int("build.cycle_count", cycleCount),
		attribute.Int("build.unresolved_imports", unresolved),
	)
	if cycleCount > 0 {
		span.AddEvent("circular dependencies detected",
			trace.WithAttributes(attribute.Int("cycle_count", cycleCount)))
	}
}

// StartRenderSpan starts a span for a render operation.
func StartRenderSpan(ctx context.Context, format string) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, fmt.Sprintf("render.%s", format),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("depscope.span.kind", SpanKindRender),
			attribute.String("render.format", format),
		),
	)
}

// StartStoreSpan starts a span for graph persistence.
func StartStoreSpan(ctx context.Context, project string) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, "store",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("depscope.span.kind", SpanKindStore),
			attribute.String("store.project", project),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
