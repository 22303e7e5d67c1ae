// Package scheduler implements the sequential target runner.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// TargetStatus represents the status of a target within a run.
type TargetStatus string

const (
	// StatusPending indicates the target is waiting to be executed.
	StatusPending TargetStatus = "Pending"
	// StatusRunning indicates the target is currently executing.
	StatusRunning TargetStatus = "Running"
	// StatusCompleted indicates the target has finished successfully.
	StatusCompleted TargetStatus = "Completed"
	// StatusFailed indicates the target failed.
	StatusFailed TargetStatus = "Failed"
	// StatusSkipped indicates the target never ran because an earlier target failed
	// or the run was cancelled.
	StatusSkipped TargetStatus = "Skipped"
)

// Scheduler runs a target and its prerequisites one at a time, stopping at the first failure.
type Scheduler struct {
	graph  *domain.Graph
	tracer ports.Tracer

	mu           sync.RWMutex
	targetStatus map[string]TargetStatus
}

// NewScheduler creates a new Scheduler for the given graph.
// It validates the graph before proceeding and returns an error if validation fails.
func NewScheduler(graph *domain.Graph, tracer ports.Tracer) (*Scheduler, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		graph:        graph,
		tracer:       tracer,
		targetStatus: make(map[string]TargetStatus),
	}, nil
}

// Targets returns every invocable target name, each followed by its single variant.
func (s *Scheduler) Targets() []string {
	names := s.graph.Names()
	out := make([]string, 0, 2*len(names))
	for _, name := range names {
		out = append(out, name, domain.SingleName(name))
	}
	return out
}

// Plan returns the names of the targets a run of requested would execute, in order.
func (s *Scheduler) Plan(requested string) ([]string, error) {
	if requested == "" {
		requested = domain.DefaultTarget
	}
	plan, _, err := s.resolve(requested)
	if err != nil {
		return nil, err
	}
	return targetNames(plan), nil
}

// Run executes the requested target. An empty name runs the default target. A single
// variant runs only the base target and disables confirmation gates.
func (s *Scheduler) Run(ctx context.Context, requested string) error {
	if requested == "" {
		requested = domain.DefaultTarget
	}

	plan, rc, err := s.resolve(requested)
	if err != nil {
		return err
	}
	names := targetNames(plan)
	s.initTargetStatuses(names)

	ctx, root := s.tracer.Start(ctx, requested, ports.AsRoot())
	defer root.End()
	s.tracer.EmitPlan(ctx, names, requested)

	for i, target := range plan {
		if err := ctx.Err(); err != nil {
			s.skip(names[i:])
			root.RecordError(err)
			return err
		}

		s.updateStatus(target.Name, StatusRunning)
		rc.Target = target.Name

		if err := s.runTarget(ctx, target, rc); err != nil {
			s.updateStatus(target.Name, StatusFailed)
			s.skip(names[i+1:])
			root.RecordError(err)
			return zerr.With(errors.Join(domain.ErrTargetFailed, err), "target", target.Name)
		}
		s.updateStatus(target.Name, StatusCompleted)
	}

	return nil
}

func (s *Scheduler) resolve(requested string) ([]*domain.Target, domain.RunContext, error) {
	base, single := domain.ParseTargetName(requested)
	rc := domain.RunContext{Single: single, SkipConfirmation: single}

	if !single {
		plan, err := s.graph.Plan(base)
		return plan, rc, err
	}

	target, ok := s.graph.Get(base)
	if !ok {
		return nil, rc, zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "cannot run target"), "target", requested)
	}
	return []*domain.Target{target}, rc, nil
}

func (s *Scheduler) runTarget(ctx context.Context, target *domain.Target, rc domain.RunContext) (err error) {
	ctx, span := s.tracer.Start(ctx, target.Name)
	defer span.End()

	span.SetAttribute("dotbuild.single", rc.Single)

	defer zerr.Defer(func(recovered error) {
		err = recovered
		span.RecordError(err)
	})

	if target.Action == nil {
		return nil
	}
	if err = target.Action(ctx, rc); err != nil {
		span.RecordError(err)
	}
	return err
}

// initTargetStatuses resets the status map to the targets of the current run.
func (s *Scheduler) initTargetStatuses(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.targetStatus = make(map[string]TargetStatus, len(names))
	for _, name := range names {
		s.targetStatus[name] = StatusPending
	}
}

// updateStatus updates the status of a target.
func (s *Scheduler) updateStatus(name string, status TargetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetStatus[name] = status
}

func (s *Scheduler) skip(names []string) {
	for _, name := range names {
		s.updateStatus(name, StatusSkipped)
	}
}

func targetNames(plan []*domain.Target) []string {
	names := make([]string, len(plan))
	for i, t := range plan {
		names[i] = t.Name
	}
	return names
}
