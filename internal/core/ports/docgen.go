package ports

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// DocGenerator runs the documentation generation script.
//
//go:generate go run go.uber.org/mock/mockgen -source=docgen.go -destination=mocks/mock_docgen.go -package=mocks
type DocGenerator interface {
	// Generate runs the generator for the given documentation target ("LocalDoc" or
	// "GithubDoc"). A non-nil result is returned whenever the generator ran, even if it
	// reported failure.
	Generate(ctx context.Context, target string) (*domain.DocResult, error)
}
