package dotnet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/dotbuild/internal/adapters/fs"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/core/ports/mocks"
	"go.trai.ch/dotbuild/internal/dotnet"
	"go.uber.org/mock/gomock"
)

// testConfig returns a configuration with two build configurations rooted at root.
func testConfig(root string) *domain.Config {
	build := func(name string) domain.BuildParam {
		return domain.BuildParam{
			Name:             name,
			ProjectFiles:     []string{"src/**/*.csproj"},
			TestProjectFiles: []string{"tests/**/*.csproj"},
			TestAssemblies:   []string{"**/*Tests*.dll"},
		}
	}
	return &domain.Config{
		Root:                    root,
		ProjectName:             "Acme.Lib",
		Summary:                 "A library",
		Description:             "A longer description",
		Authors:                 []string{"Jane", "John"},
		Tags:                    "acme lib",
		Copyright:               "Copyright 2026",
		Version:                 "1.2.0-beta",
		ReleaseNotes:            "First release; with fixes",
		BuildMode:               "Release",
		BuildDir:                filepath.Join(root, "build"),
		TestDir:                 filepath.Join(root, "test"),
		ReleaseDir:              filepath.Join(root, "release"),
		NuGetDir:                filepath.Join(root, "release", "nuget"),
		DocOutputDir:            filepath.Join(root, "release", "documentation"),
		DocContentDir:           filepath.Join(root, "doc"),
		PackagesDir:             filepath.Join(root, "packages"),
		BuildToolPackage:        "FAKE",
		UseNuGet:                true,
		SetAssemblyFileVersions: true,
		NuSpecPattern:           "nuget/*.nuspec",
		ReleaseFiles:            []string{"Acme.Lib.dll", "Acme.Lib.xml"},
		BuildParams:             []domain.BuildParam{build("net40"), build("net45")},
		Tools: domain.Tools{
			Restore: domain.ToolSpec{Command: "nuget", Args: []string{"restore", "-PackagesDirectory", "{{.OutputDir}}"}},
			Compile: domain.ToolSpec{Command: "dotnet", Args: []string{"build", "-c", "{{.Configuration}}", "-o", "{{.OutputDir}}"}},
			Test:    domain.ToolSpec{Command: "dotnet", Args: []string{"test", "--logger", "trx;LogFileName={{.LogFile}}"}},
			Pack: domain.ToolSpec{Command: "nuget", Args: []string{
				"pack", "-OutputDirectory", "{{.OutputDir}}", "-BasePath", "{{.BasePath}}", "-Properties", "{{.Properties}}",
			}},
			Docs: domain.ToolSpec{Command: "dotnet", Args: []string{"fsi", "generate.fsx", "{{.Target}}"}},
		},
		Git: domain.GitConfig{Remote: "origin", DocsBranch: "gh-pages", PushBranch: "develop"},
	}
}

// fixture bundles the targets under test with the mocks behind them.
type fixture struct {
	cfg      *domain.Config
	logger   *mocks.MockLogger
	executor *mocks.MockExecutor
	fs       *mocks.MockFileSystem
	vcs      *mocks.MockVersionControl
	prompter *mocks.MockPrompter
	docs     *mocks.MockDocGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &fixture{
		cfg:      testConfig("/repo"),
		logger:   mocks.NewMockLogger(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		fs:       mocks.NewMockFileSystem(ctrl),
		vcs:      mocks.NewMockVersionControl(ctrl),
		prompter: mocks.NewMockPrompter(ctrl),
		docs:     mocks.NewMockDocGenerator(ctrl),
	}
}

// withRealFS replaces the file system mock with the real adapter on a temporary root.
func (f *fixture) withRealFS(t *testing.T) ports.FileSystem {
	t.Helper()
	f.cfg = testConfig(t.TempDir())
	return fsadapter.New(fsadapter.NewWalker())
}

func (f *fixture) targets(fs ports.FileSystem) *dotnet.Targets {
	return dotnet.New(dotnet.Deps{
		Config:   f.cfg,
		Logger:   f.logger,
		Executor: f.executor,
		FS:       fs,
		VCS:      f.vcs,
		Prompter: f.prompter,
		Docs:     f.docs,
	})
}

// target returns the action of the named target.
func (f *fixture) target(t *testing.T, fs ports.FileSystem, name string) domain.TargetFunc {
	t.Helper()
	g, err := f.targets(fs).Graph()
	require.NoError(t, err)
	target, ok := g.Get(name)
	require.True(t, ok, "target %s not registered", name)
	return target.Action
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}
