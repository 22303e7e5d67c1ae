package dotnet

import (
	"context"
	"path/filepath"
	"strconv"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// testOutputLogName receives the console output of the test runner next to its results.
const testOutputLogName = "TestOutput.log"

// testData is exposed to the test tool arguments.
type testData struct {
	Name       string
	WorkingDir string
	LogFile    string
}

// runTests runs the test assemblies of p. Finding none is reported but does not fail the build.
func (t *Targets) runTests(ctx context.Context, p domain.BuildParam) error {
	dir := t.cfg.TestOutputDir(p)
	assemblies, err := t.fs.Glob(dir, p.TestAssemblies)
	if err != nil {
		return err
	}
	if len(assemblies) == 0 {
		err := zerr.With(zerr.Wrap(domain.ErrNoTestAssemblies, "nothing to test"), "dir", dir)
		t.logger.Error(zerr.With(err, "build", p.SimpleName()))
		return nil
	}

	cmd, err := t.cfg.Tools.Test.Render("test", t.cfg.Root, testData{
		Name:       p.SimpleName(),
		WorkingDir: dir,
		LogFile:    t.cfg.TestResultsPath(p),
	}, assemblies...)
	if err != nil {
		return err
	}
	if t.cfg.Tools.Test.Dir == "" {
		cmd.Dir = dir
	}
	cmd.LogFile = filepath.Join(dir, testOutputLogName)

	t.logger.Info("Running " + strconv.Itoa(len(assemblies)) + " test assembly(s) for " + p.SimpleName())
	return t.executor.Execute(ctx, cmd)
}
