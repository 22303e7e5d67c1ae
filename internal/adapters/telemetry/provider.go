// Package telemetry adapts OpenTelemetry spans and Prometheus metrics to the build runner.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/dotbuild/internal/core/ports"
)

const (
	// InstrumentationName names the tracer of dotbuild.
	InstrumentationName = "go.trai.ch/dotbuild"

	// RunIDAttribute carries the run id on the root span.
	RunIDAttribute = "dotbuild.run_id"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	runID    string
	renderer ports.Renderer
}

// NewOTelTracer creates a new OTelTracer. Plans are forwarded to renderer when it is not nil.
func NewOTelTracer(provider trace.TracerProvider, runID string, renderer ports.Renderer) *OTelTracer {
	return &OTelTracer{
		tracer:   provider.Tracer(InstrumentationName),
		runID:    runID,
		renderer: renderer,
	}
}

// Start creates a new span. Root spans start a new trace tagged with the run id.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Root {
		startOpts = append(startOpts,
			trace.WithNewRoot(),
			trace.WithAttributes(attribute.String(RunIDAttribute, t.runID)),
		)
	}

	ctx, span := t.tracer.Start(ctx, name, startOpts...)
	return ctx, &OTelSpan{span: span}
}

// EmitPlan signals that a set of targets is planned for execution by adding an event to the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, targets []string, requested string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("targets", targets),
			attribute.String("requested", requested),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlan(targets, requested)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
