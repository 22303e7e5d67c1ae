package dotnet

import (
	"context"
	"path/filepath"
	"strconv"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// copyToRelease copies the release files of every build output into the release
// layout. Builds that produced no output directory are skipped.
func (t *Targets) copyToRelease(_ context.Context, _ domain.RunContext) error {
	for _, p := range t.cfg.BuildParams {
		outDir := t.cfg.OutputDir(p)
		if !t.fs.Exists(outDir) {
			t.logger.Info("Skipping " + p.SimpleName() + ": " + t.rel(outDir) + " does not exist")
			continue
		}

		files, err := t.fs.Glob(outDir, t.cfg.ReleaseFiles)
		if err != nil {
			return err
		}

		libDir := t.cfg.ReleaseLibDir(p)
		copied := 0
		for _, src := range files {
			rel, err := filepath.Rel(outDir, src)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to resolve release file"), "path", src)
			}
			ok, err := t.fs.CopyIfNewer(src, filepath.Join(libDir, rel))
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to copy release file"), "path", src)
			}
			if ok {
				copied++
			}
		}
		t.logger.Info("Copied " + strconv.Itoa(copied) + " of " + strconv.Itoa(len(files)) +
			" file(s) to " + t.rel(libDir))
	}
	return nil
}
