package dotnet

import (
	"context"
	"errors"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// docTarget returns the action running the documentation generator for target.
func (t *Targets) docTarget(target string) domain.TargetFunc {
	return func(ctx context.Context, _ domain.RunContext) error {
		return t.generateDocs(ctx, target)
	}
}

// generateDocs runs the generator and surfaces every line it logged.
func (t *Targets) generateDocs(ctx context.Context, target string) error {
	result, err := t.docs.Generate(ctx, target)
	if err != nil {
		return err
	}

	for _, line := range result.Lines {
		if line.IsError {
			t.logger.Error(errors.New(line.Text))
			continue
		}
		t.logger.Info(line.Text)
	}

	if !result.Success {
		return zerr.With(zerr.Wrap(domain.ErrDocGenerationFailed, "generator reported failure"), "target", target)
	}
	return nil
}
