package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/dotbuild/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor to forward target spans to a Renderer and
// to the run metrics. Root spans, which cover a whole run, are not forwarded.
type Bridge struct {
	renderer ports.Renderer
	metrics  *Metrics
}

// NewBridge returns a new Bridge. Either argument may be nil.
func NewBridge(renderer ports.Renderer, metrics *Metrics) *Bridge {
	return &Bridge{
		renderer: renderer,
		metrics:  metrics,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !isTargetSpan(s) {
		return
	}

	b.renderer.OnTargetStart(
		s.SpanContext().SpanID().String(),
		s.Name(),
		s.StartTime(),
	)
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !isTargetSpan(s) {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "target failed"
		}
		err = errors.New(desc)
	}

	if b.metrics != nil {
		b.metrics.Observe(s.Name(), s.EndTime().Sub(s.StartTime()), err)
	}

	if b.renderer != nil {
		b.renderer.OnTargetComplete(
			s.SpanContext().SpanID().String(),
			s.EndTime(),
			err,
		)
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// isTargetSpan reports whether s is the span of a single target.
func isTargetSpan(s sdktrace.ReadOnlySpan) bool {
	return s.SpanContext().IsValid() && s.Parent().IsValid()
}
