package dotnet

import (
	"context"
	"path/filepath"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func (t *Targets) outputDirs() []string {
	return []string{
		t.cfg.BuildDir,
		t.cfg.TestDir,
		t.cfg.ReleaseDir,
		t.cfg.NuGetDir,
		t.cfg.DocOutputDir,
	}
}

func (t *Targets) clean(_ context.Context, _ domain.RunContext) error {
	for _, dir := range t.outputDirs() {
		if !t.fs.Exists(dir) {
			continue
		}
		if err := t.fs.Remove(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clean directory"), "dir", dir)
		}
		t.logger.Info("Removed " + t.rel(dir))
	}
	return nil
}

func (t *Targets) cleanAll(ctx context.Context, rc domain.RunContext) error {
	if err := t.clean(ctx, rc); err != nil {
		return err
	}

	entries, err := t.fs.Entries(t.cfg.PackagesDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list packages"), "dir", t.cfg.PackagesDir)
	}
	for _, name := range entries {
		if name == t.cfg.BuildToolPackage {
			continue
		}
		path := filepath.Join(t.cfg.PackagesDir, name)
		if err := t.fs.Remove(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove package"), "path", path)
		}
		t.logger.Info("Removed " + t.rel(path))
	}
	return nil
}

// rel shortens path for log output.
func (t *Targets) rel(path string) string {
	if r, err := filepath.Rel(t.cfg.Root, path); err == nil && filepath.IsLocal(r) {
		return r
	}
	return path
}
