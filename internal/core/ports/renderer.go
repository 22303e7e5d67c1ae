package ports

import "time"

// Renderer presents the progress of a run.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlan is called once the runner has planned the targets of a run.
	// targets: target names in execution order
	// requested: the target the operator asked for
	OnPlan(targets []string, requested string)

	// OnTargetStart is called when a target begins execution.
	OnTargetStart(spanID, name string, startTime time.Time)

	// OnTargetComplete is called when a target finishes execution.
	// err is nil if the target succeeded.
	OnTargetComplete(spanID string, endTime time.Time, err error)

	// Stop flushes the output and prints the build time report.
	Stop() error
}
