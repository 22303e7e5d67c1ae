package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/dotbuild/internal/adapters/fs"
	"go.trai.ch/dotbuild/internal/app"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// testConfig returns a single-build configuration rooted at a temporary directory
// that contains one project file.
func testConfig(t *testing.T) *domain.Config {
	t.Helper()
	root := t.TempDir()
	project := filepath.Join(root, "src", "Acme.Lib", "Acme.Lib.csproj")
	require.NoError(t, os.MkdirAll(filepath.Dir(project), domain.DirPerm))
	require.NoError(t, os.WriteFile(project, []byte("<Project />"), domain.FilePerm))

	return &domain.Config{
		Root:          root,
		ProjectName:   "Acme.Lib",
		Version:       "1.0.0",
		BuildMode:     "Release",
		BuildDir:      filepath.Join(root, "build"),
		TestDir:       filepath.Join(root, "test"),
		ReleaseDir:    filepath.Join(root, "release"),
		NuGetDir:      filepath.Join(root, "release", "nuget"),
		DocOutputDir:  filepath.Join(root, "release", "documentation"),
		DocContentDir: filepath.Join(root, "doc"),
		PackagesDir:   filepath.Join(root, "packages"),
		BuildParams: []domain.BuildParam{{
			ProjectFiles: []string{"src/**/*.csproj"},
			DisableTests: true,
		}},
		Tools: domain.Tools{
			Compile: domain.ToolSpec{Command: "dotnet", Args: []string{"build", "-o", "{{.OutputDir}}"}},
			Docs:    domain.ToolSpec{Command: "dotnet", Args: []string{"fsi", "generate.fsx", "{{.Target}}"}},
		},
		Git: domain.GitConfig{Remote: "origin", PushBranch: "develop", DocsBranch: "gh-pages"},
	}
}

type testApp struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	prompter *mocks.MockPrompter
	watcher  *mocks.MockWatcher
	out      *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		prompter: mocks.NewMockPrompter(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		out:      &bytes.Buffer{},
	}
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	ta.app = app.New(
		ta.loader,
		ta.executor,
		ta.logger,
		fsadapter.New(fsadapter.NewWalker()),
		ta.prompter,
		ta.watcher,
	).WithOutput(ta.out)
	return ta
}

func TestApp_Run(t *testing.T) {
	ta := newTestApp(t)
	cfg := testConfig(t)
	cfg.MetricsFile = filepath.Join(cfg.Root, "metrics", "dotbuild.prom")
	ta.loader.EXPECT().Load("build.yaml").Return(cfg, nil)

	var tools []string
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command) error {
			tools = append(tools, cmd.Tool)
			return nil
		},
	).Times(2)

	require.NoError(t, ta.app.Run(context.Background(), "", app.RunOptions{}))

	assert.Equal(t, []string{"compile", "docs"}, tools)
	assert.Contains(t, ta.out.String(), "Running All (7 target(s))")
	assert.Contains(t, ta.out.String(), "Finished Target: Build_main")
	assert.Contains(t, ta.out.String(), "Build Time Report")
	assert.Contains(t, ta.out.String(), "Ok")

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `dotbuild_targets_total{status="succeeded"} 7`)
}

func TestApp_Run_TargetFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load("custom.yaml").Return(testConfig(t), nil)

	compileErr := errors.New("exit status 1")
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(compileErr)

	err := ta.app.Run(context.Background(), "Build_main", app.RunOptions{ConfigPath: "custom.yaml"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrTargetFailed)
	assert.ErrorIs(t, err, compileErr)
	assert.Contains(t, ta.out.String(), "Failure")
}

func TestApp_Run_LoadError(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load("build.yaml").Return(nil, domain.ErrMissingProjectName)

	err := ta.app.Run(context.Background(), "All", app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrMissingProjectName)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Empty(t, ta.out.String())
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load("build.yaml").Return(testConfig(t), nil)

	err := ta.app.Run(context.Background(), "Deploy", app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestApp_Run_AssumeYes(t *testing.T) {
	ta := newTestApp(t)
	cfg := testConfig(t)
	ta.loader.EXPECT().Load("build.yaml").Return(cfg, nil).Times(2)
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	vcs := mocks.NewMockVersionControl(gomock.NewController(t))
	ta.app.WithVersionControl(vcs)
	changes := []domain.FileChange{{Path: "RELEASE_NOTES.md", Status: "M"}}

	t.Run("prompts without yes", func(t *testing.T) {
		vcs.EXPECT().ChangedFiles(cfg.Root).Return(changes, nil)
		ta.prompter.EXPECT().Confirm(gomock.Any(), "Commit and push 1 change(s) to origin/develop?").Return(false, nil)

		err := ta.app.Run(context.Background(), "VersionBump", app.RunOptions{})
		require.ErrorIs(t, err, domain.ErrAborted)
	})

	t.Run("accepts with yes", func(t *testing.T) {
		vcs.EXPECT().ChangedFiles(cfg.Root).Return(changes, nil)
		vcs.EXPECT().StageAll(cfg.Root).Return(nil)
		vcs.EXPECT().Commit(cfg.Root, "Bump version to 1.0.0").Return(nil)
		vcs.EXPECT().Push(gomock.Any(), cfg.Root, "origin", "develop").Return(nil)

		require.NoError(t, ta.app.Run(context.Background(), "VersionBump", app.RunOptions{AssumeYes: true}))
	})
}

func TestApp_Targets(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load("build.yaml").Return(testConfig(t), nil)

	targets, err := ta.app.Targets(app.RunOptions{})
	require.NoError(t, err)

	names := make([]string, 0, len(targets))
	for _, target := range targets {
		names = append(names, target.Name)
		assert.NotEmpty(t, target.Description, target.Name)
	}
	assert.Equal(t, []string{
		"All", "Build_main", "Clean", "CleanAll", "CopyToRelease", "GithubDoc", "LocalDoc",
		"NuGet", "Release", "ReleaseGithubDoc", "RestorePackages", "SetVersions", "VersionBump",
	}, names)
	assert.Equal(t, []string{"NuGet", "ReleaseGithubDoc"}, targets[8].RunsAfter)
}

func TestApp_Watch(t *testing.T) {
	ta := newTestApp(t)
	cfg := testConfig(t)
	ta.loader.EXPECT().Load("build.yaml").Return(cfg, nil)
	ta.app.WithDebounceWindow(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ta.watcher.EXPECT().Start(gomock.Any(), cfg.DocContentDir).Return(nil)
	ta.watcher.EXPECT().Stop().Return(nil)
	ta.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		for _, name := range []string{"index.md", "tutorial.md"} {
			if !yield(ports.WatchEvent{Path: filepath.Join(cfg.DocContentDir, name), Operation: ports.OpWrite}) {
				return
			}
		}
		<-ctx.Done()
	}))

	var runs atomic.Int32
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command) error {
			assert.Equal(t, "docs", cmd.Tool)
			assert.Equal(t, []string{"fsi", "generate.fsx", "LocalDoc"}, cmd.Args)
			if runs.Add(1) == 2 {
				cancel()
			}
			return nil
		},
	).Times(2)

	done := make(chan error, 1)
	go func() { done <- ta.app.Watch(ctx, app.WatchOptions{}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Equal(t, int32(2), runs.Load())
}
