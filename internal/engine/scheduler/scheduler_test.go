package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/core/ports/mocks"
	"go.trai.ch/dotbuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// recorder collects the invocations of target actions.
type recorder struct {
	calls []domain.RunContext
	fail  map[string]error
}

func (r *recorder) action(name string) domain.TargetFunc {
	return func(_ context.Context, rc domain.RunContext) error {
		r.calls = append(r.calls, rc)
		return r.fail[name]
	}
}

func (r *recorder) names() []string {
	names := make([]string, len(r.calls))
	for i, rc := range r.calls {
		names[i] = rc.Target
	}
	return names
}

// newTracer returns a tracer mock that accepts any span.
func newTracer(t *testing.T) *mocks.MockTracer {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return tracer
}

// buildChain creates the standard chain with two build configurations.
func buildChain(t *testing.T, rec *recorder) *domain.Graph {
	t.Helper()
	deps := []struct {
		name string
		deps []string
	}{
		{"Clean", nil},
		{"RestorePackages", []string{"Clean"}},
		{"SetVersions", []string{"RestorePackages"}},
		{"Build_net40", []string{"SetVersions"}},
		{"Build_net45", []string{"SetVersions"}},
		{"All", []string{"Build_net40", "Build_net45"}},
		{"ReleaseGithubDoc", []string{"All"}},
	}
	g := domain.NewGraph()
	for _, d := range deps {
		require.NoError(t, g.AddTarget(&domain.Target{
			Name:         d.name,
			Action:       rec.action(d.name),
			Dependencies: d.deps,
		}))
	}
	return g
}

func TestScheduler_RunChain(t *testing.T) {
	rec := &recorder{}
	s, err := scheduler.NewScheduler(buildChain(t, rec), newTracer(t))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), "All"))

	assert.Equal(t,
		[]string{"Clean", "RestorePackages", "SetVersions", "Build_net40", "Build_net45", "All"},
		rec.names())
	for _, rc := range rec.calls {
		assert.False(t, rc.Single)
		assert.False(t, rc.SkipConfirmation)
	}

	for name, status := range s.GetTargetStatusMap() {
		assert.Equal(t, scheduler.StatusCompleted, status, name)
	}
}

func TestScheduler_RunDefaultsToAll(t *testing.T) {
	rec := &recorder{}
	s, err := scheduler.NewScheduler(buildChain(t, rec), newTracer(t))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), ""))
	require.NotEmpty(t, rec.names())
	assert.Equal(t, "All", rec.names()[len(rec.names())-1])
}

func TestScheduler_SingleVariant(t *testing.T) {
	rec := &recorder{}
	s, err := scheduler.NewScheduler(buildChain(t, rec), newTracer(t))
	require.NoError(t, err)

	for _, name := range []string{"Clean", "SetVersions", "Build_net45", "All", "ReleaseGithubDoc"} {
		t.Run(name, func(t *testing.T) {
			rec.calls = nil
			require.NoError(t, s.Run(context.Background(), domain.SingleName(name)))

			require.Len(t, rec.calls, 1)
			assert.Equal(t, domain.RunContext{Target: name, Single: true, SkipConfirmation: true}, rec.calls[0])
		})
	}
}

func TestScheduler_Targets(t *testing.T) {
	s, err := scheduler.NewScheduler(buildChain(t, &recorder{}), newTracer(t))
	require.NoError(t, err)

	targets := s.Targets()
	assert.Len(t, targets, 14)
	for _, name := range []string{"Clean", "Build_net40", "All"} {
		assert.Contains(t, targets, name)
		assert.Contains(t, targets, name+"_single")
	}
}

func TestScheduler_FailureStopsChain(t *testing.T) {
	buildErr := errors.New("compiler exited with 1")
	rec := &recorder{fail: map[string]error{"Build_net40": buildErr}}
	s, err := scheduler.NewScheduler(buildChain(t, rec), newTracer(t))
	require.NoError(t, err)

	err = s.Run(context.Background(), "All")
	require.Error(t, err)
	assert.True(t, errors.Is(err, buildErr))
	assert.True(t, errors.Is(err, domain.ErrTargetFailed))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "Build_net40", zErr.Metadata()["target"])

	assert.NotContains(t, rec.names(), "All")
	assert.NotContains(t, rec.names(), "Build_net45")

	statuses := s.GetTargetStatusMap()
	assert.Equal(t, scheduler.StatusCompleted, statuses["SetVersions"])
	assert.Equal(t, scheduler.StatusFailed, statuses["Build_net40"])
	assert.Equal(t, scheduler.StatusSkipped, statuses["Build_net45"])
	assert.Equal(t, scheduler.StatusSkipped, statuses["All"])
}

func TestScheduler_PanicBecomesError(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(&domain.Target{
		Name:   "Boom",
		Action: func(context.Context, domain.RunContext) error { panic("kaboom") },
	}))
	s, err := scheduler.NewScheduler(g, newTracer(t))
	require.NoError(t, err)

	err = s.Run(context.Background(), "Boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, scheduler.StatusFailed, s.GetTargetStatusMap()["Boom"])
}

func TestScheduler_Cancelled(t *testing.T) {
	rec := &recorder{}
	s, err := scheduler.NewScheduler(buildChain(t, rec), newTracer(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Run(ctx, "All")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
	assert.Equal(t, scheduler.StatusSkipped, s.GetTargetStatusMap()["Clean"])
}

func TestScheduler_UnknownTarget(t *testing.T) {
	s, err := scheduler.NewScheduler(buildChain(t, &recorder{}), newTracer(t))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Run(context.Background(), "Nope"), domain.ErrTargetNotFound)
	assert.ErrorIs(t, s.Run(context.Background(), "Nope_single"), domain.ErrTargetNotFound)
}

func TestScheduler_InvalidGraph(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(&domain.Target{Name: "A", Dependencies: []string{"B"}}))
	require.NoError(t, g.AddTarget(&domain.Target{Name: "B", Dependencies: []string{"A"}}))

	_, err := scheduler.NewScheduler(g, newTracer(t))
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestScheduler_Plan(t *testing.T) {
	s, err := scheduler.NewScheduler(buildChain(t, &recorder{}), newTracer(t))
	require.NoError(t, err)

	plan, err := s.Plan("Build_net45")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean", "RestorePackages", "SetVersions", "Build_net45"}, plan)

	plan, err = s.Plan("Build_net45_single")
	require.NoError(t, err)
	assert.Equal(t, []string{"Build_net45"}, plan)
}
