package telemetry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/dotbuild/internal/adapters/telemetry"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_Spans(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	mockRenderer := mocks.NewMockRenderer(ctrl)
	mockRenderer.EXPECT().OnPlan([]string{"Clean", "All"}, "All")

	tracer := telemetry.NewOTelTracer(tp, "run-1", mockRenderer)

	ctx, root := tracer.Start(context.Background(), "dotbuild", ports.AsRoot())
	tracer.EmitPlan(ctx, []string{"Clean", "All"}, "All")

	_, span := tracer.Start(ctx, "Clean")
	span.SetAttribute("dotbuild.single", true)
	span.SetAttribute("attempt", 1)
	span.RecordError(errors.New("boom"))
	span.End()
	root.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	clean, run := ended[0], ended[1]
	assert.Equal(t, "Clean", clean.Name())
	assert.Equal(t, codes.Error, clean.Status().Code)
	assert.Equal(t, "boom", clean.Status().Description)
	assert.Contains(t, clean.Attributes(), attribute.Bool("dotbuild.single", true))
	assert.Contains(t, clean.Attributes(), attribute.Int("attempt", 1))
	assert.Equal(t, run.SpanContext().SpanID(), clean.Parent().SpanID())

	assert.False(t, run.Parent().IsValid())
	assert.Contains(t, run.Attributes(), attribute.String(telemetry.RunIDAttribute, "run-1"))
	require.Len(t, run.Events(), 1)
	assert.Equal(t, "plan_emitted", run.Events()[0].Name)
}

func TestBridge_ForwardsTargetSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	metrics := telemetry.NewMetrics()

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer, metrics)))
	tracer := telemetry.NewOTelTracer(tp, "run-1", nil)

	var startedID string
	gomock.InOrder(
		mockRenderer.EXPECT().OnTargetStart(gomock.Any(), "Build_main", gomock.Any()).Do(
			func(spanID, _ string, _ time.Time) { startedID = spanID }),
		mockRenderer.EXPECT().OnTargetComplete(gomock.Any(), gomock.Any(), nil).Do(
			func(spanID string, _ time.Time, _ error) { assert.Equal(t, startedID, spanID) }),
		mockRenderer.EXPECT().OnTargetStart(gomock.Any(), "All", gomock.Any()),
		mockRenderer.EXPECT().OnTargetComplete(gomock.Any(), gomock.Any(), gomock.Any()).Do(
			func(_ string, _ time.Time, err error) { assert.EqualError(t, err, "compile failed") }),
	)

	ctx, root := tracer.Start(context.Background(), "dotbuild", ports.AsRoot())
	_, build := tracer.Start(ctx, "Build_main")
	build.End()
	_, all := tracer.Start(ctx, "All")
	all.RecordError(errors.New("compile failed"))
	all.End()
	root.End()

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TargetsCounter(telemetry.StatusSucceeded)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TargetsCounter(telemetry.StatusFailed)), 0)
}

func TestBridge_NilRenderer(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil, nil)))
	tracer := telemetry.NewOTelTracer(tp, "run-1", nil)

	ctx, root := tracer.Start(context.Background(), "dotbuild", ports.AsRoot())
	_, span := tracer.Start(ctx, "Clean")
	span.End()
	root.End()
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	metrics := telemetry.NewMetrics()
	metrics.Observe("Clean", 200*time.Millisecond, nil)
	metrics.Observe("Build_main", 3*time.Second, errors.New("failed"))

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.Registry(), "dotbuild_targets_total"))

	path := filepath.Join(t.TempDir(), "textfile", "dotbuild.prom")
	require.NoError(t, metrics.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `dotbuild_targets_total{status="failed"} 1`)
	assert.Contains(t, content, `dotbuild_targets_total{status="succeeded"} 1`)
	assert.Contains(t, content, `dotbuild_target_duration_seconds_count{target="Clean"} 1`)
	assert.True(t, strings.HasSuffix(content, "\n"))
}

func TestNewRunID(t *testing.T) {
	a, b := telemetry.NewRunID(), telemetry.NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()
	got, span := tracer.Start(ctx, "Clean", ports.AsRoot())
	assert.Equal(t, ctx, got)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
	tracer.EmitPlan(ctx, nil, "All")
}
