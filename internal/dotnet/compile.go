package dotnet

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// compileData is exposed to the compile tool arguments.
type compileData struct {
	Name          string
	Configuration string
	OutputDir     string
	Version       string
}

// build returns the action of the build target of p: compile the application, then
// compile and run the tests unless they are disabled.
func (t *Targets) build(p domain.BuildParam) domain.TargetFunc {
	return func(ctx context.Context, _ domain.RunContext) error {
		if err := t.buildApp(ctx, p); err != nil {
			return err
		}
		if p.DisableTests {
			t.logger.Info("Tests are disabled for " + p.SimpleName())
			return nil
		}
		if err := t.buildTests(ctx, p); err != nil {
			return err
		}
		return t.runTests(ctx, p)
	}
}

func (t *Targets) buildApp(ctx context.Context, p domain.BuildParam) error {
	projects, err := t.fs.Glob(t.cfg.Root, p.ProjectFiles)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		err := zerr.With(zerr.Wrap(domain.ErrNoProjectFiles, "nothing to build"), "build", p.SimpleName())
		return zerr.With(err, "patterns", p.ProjectFiles)
	}
	return t.compile(ctx, p, projects, t.cfg.OutputDir(p))
}

func (t *Targets) buildTests(ctx context.Context, p domain.BuildParam) error {
	projects, err := t.fs.Glob(t.cfg.Root, p.TestProjectFiles)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		t.logger.Warn("No test projects found for " + p.SimpleName())
		return nil
	}
	return t.compile(ctx, p, projects, t.cfg.TestOutputDir(p))
}

func (t *Targets) compile(ctx context.Context, p domain.BuildParam, projects []string, outputDir string) error {
	data := compileData{
		Name:          p.SimpleName(),
		Configuration: p.Mode(t.cfg.BuildMode),
		OutputDir:     outputDir,
		Version:       t.cfg.Version,
	}
	for _, project := range projects {
		cmd, err := t.cfg.Tools.Compile.Render("compile", t.cfg.Root, data, project)
		if err != nil {
			return err
		}
		t.logger.Info("Building " + t.rel(project) + " (" + data.Configuration + ")")
		if err := t.executor.Execute(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}
