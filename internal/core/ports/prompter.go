package ports

import "context"

// Prompter asks the operator for confirmation before destructive or publishing actions.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm asks a yes/no question and reports whether the answer was yes.
	Confirm(ctx context.Context, question string) (bool, error)
}
