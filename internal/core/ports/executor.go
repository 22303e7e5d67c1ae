// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// Executor defines the interface for running external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and blocks until it exits or its timeout expires.
	//
	// Output is logged line by line unless the command carries its own writers.
	// It returns an error if the command exits unsuccessfully.
	Execute(ctx context.Context, cmd *domain.Command) error
}
