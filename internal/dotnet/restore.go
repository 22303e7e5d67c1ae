package dotnet

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// packagesConfigPattern locates the legacy per-project package lists.
const packagesConfigPattern = "**/packages.config"

type restoreData struct {
	OutputDir string
}

func (t *Targets) restorePackages(ctx context.Context, _ domain.RunContext) error {
	if !t.cfg.UseNuGet {
		t.logger.Info("Package restore is disabled (use_nuget: false)")
		return nil
	}

	manifests, err := t.fs.Glob(t.cfg.Root, []string{packagesConfigPattern})
	if err != nil {
		return err
	}

	// Without packages.config files the tool restores whatever it finds in its
	// working directory (solution or project files).
	if len(manifests) == 0 {
		return t.restore(ctx)
	}
	for _, manifest := range manifests {
		if err := t.restore(ctx, manifest); err != nil {
			return err
		}
	}
	return nil
}

func (t *Targets) restore(ctx context.Context, inputs ...string) error {
	cmd, err := t.cfg.Tools.Restore.Render("restore", t.cfg.Root, restoreData{OutputDir: t.cfg.PackagesDir}, inputs...)
	if err != nil {
		return err
	}
	return t.executor.Execute(ctx, cmd)
}
