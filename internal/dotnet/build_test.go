package dotnet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/dotnet"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// captureCommands records every executed command.
func (f *fixture) captureCommands() *[]*domain.Command {
	var cmds []*domain.Command
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command) error {
			cmds = append(cmds, cmd)
			return nil
		},
	).AnyTimes()
	return &cmds
}

func TestRestorePackages_Disabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.UseNuGet = false
	f.logger.EXPECT().Info("Package restore is disabled (use_nuget: false)")
	// No executor or file system expectations: nothing may be restored.

	require.NoError(t, f.target(t, f.fs, dotnet.TargetRestorePackages)(context.Background(), domain.RunContext{}))
}

func TestRestorePackages(t *testing.T) {
	tests := []struct {
		name      string
		manifests []string
		wantArgs  [][]string
	}{
		{
			name:     "solution restore",
			wantArgs: [][]string{{"restore", "-PackagesDirectory", "/repo/packages"}},
		},
		{
			name:      "per packages.config",
			manifests: []string{"/repo/src/A/packages.config", "/repo/tests/B/packages.config"},
			wantArgs: [][]string{
				{"restore", "-PackagesDirectory", "/repo/packages", "/repo/src/A/packages.config"},
				{"restore", "-PackagesDirectory", "/repo/packages", "/repo/tests/B/packages.config"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fs.EXPECT().Glob("/repo", []string{"**/packages.config"}).Return(tt.manifests, nil)
			cmds := f.captureCommands()

			require.NoError(t, f.target(t, f.fs, dotnet.TargetRestorePackages)(context.Background(), domain.RunContext{}))

			require.Len(t, *cmds, len(tt.wantArgs))
			for i, cmd := range *cmds {
				assert.Equal(t, "nuget", cmd.Name)
				assert.Equal(t, tt.wantArgs[i], cmd.Args)
				assert.Equal(t, "/repo", cmd.Dir)
			}
		})
	}
}

func TestBuild_CompilesAndTests(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).Return([]string{"/repo/src/Acme.Lib/Acme.Lib.csproj"}, nil)
	f.fs.EXPECT().Glob("/repo", []string{"tests/**/*.csproj"}).Return([]string{"/repo/tests/Acme.Lib.Tests/Acme.Lib.Tests.csproj"}, nil)
	f.fs.EXPECT().Glob("/repo/test/net45", []string{"**/*Tests*.dll"}).Return([]string{"/repo/test/net45/Acme.Lib.Tests.dll"}, nil)
	cmds := f.captureCommands()

	require.NoError(t, f.target(t, f.fs, "Build_net45")(context.Background(), domain.RunContext{}))

	require.Len(t, *cmds, 3)
	app, tests, run := (*cmds)[0], (*cmds)[1], (*cmds)[2]

	assert.Equal(t, "compile", app.Tool)
	assert.Equal(t, []string{"build", "-c", "Release", "-o", "/repo/build/net45", "/repo/src/Acme.Lib/Acme.Lib.csproj"}, app.Args)

	assert.Equal(t, "compile", tests.Tool)
	assert.Equal(t, []string{"build", "-c", "Release", "-o", "/repo/test/net45", "/repo/tests/Acme.Lib.Tests/Acme.Lib.Tests.csproj"}, tests.Args)

	assert.Equal(t, "test", run.Tool)
	assert.Equal(t, []string{
		"test", "--logger", "trx;LogFileName=/repo/test/net45/TestResults.trx", "/repo/test/net45/Acme.Lib.Tests.dll",
	}, run.Args)
	assert.Equal(t, "/repo/test/net45", run.Dir)
	assert.Equal(t, "/repo/test/net45/TestOutput.log", run.LogFile)
}

func TestBuild_ModeOverride(t *testing.T) {
	f := newFixture(t)
	f.cfg.BuildParams[0].BuildMode = "Debug"
	f.cfg.BuildParams[0].DisableTests = true
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).Return([]string{"/repo/src/A.csproj"}, nil)
	cmds := f.captureCommands()

	require.NoError(t, f.target(t, f.fs, "Build_net40")(context.Background(), domain.RunContext{}))

	require.Len(t, *cmds, 1)
	assert.Equal(t, []string{"build", "-c", "Debug", "-o", "/repo/build/net40", "/repo/src/A.csproj"}, (*cmds)[0].Args)
}

func TestBuild_NoProjects(t *testing.T) {
	f := newFixture(t)
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).Return([]string{}, nil)

	err := f.target(t, f.fs, "Build_net40")(context.Background(), domain.RunContext{})
	require.ErrorIs(t, err, domain.ErrNoProjectFiles)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "net40", zErr.Metadata()["build"])
}

func TestBuild_NoTestProjects(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn("No test projects found for net40")
	f.logger.EXPECT().Error(gomock.Any())
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).Return([]string{"/repo/src/A.csproj"}, nil)
	f.fs.EXPECT().Glob("/repo", []string{"tests/**/*.csproj"}).Return(nil, nil)
	f.fs.EXPECT().Glob("/repo/test/net40", []string{"**/*Tests*.dll"}).Return(nil, nil)
	cmds := f.captureCommands()

	require.NoError(t, f.target(t, f.fs, "Build_net40")(context.Background(), domain.RunContext{}))
	assert.Len(t, *cmds, 1)
}

func TestRunTests_NoAssemblies(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).Return([]string{"/repo/src/A.csproj"}, nil)
	f.fs.EXPECT().Glob("/repo", []string{"tests/**/*.csproj"}).Return([]string{"/repo/tests/A.Tests.csproj"}, nil)
	f.fs.EXPECT().Glob("/repo/test/net40", []string{"**/*Tests*.dll"}).Return([]string{}, nil)

	var logged error
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	var tools []string
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command) error {
			tools = append(tools, cmd.Tool)
			return nil
		},
	).Times(2)

	require.NoError(t, f.target(t, f.fs, "Build_net40")(context.Background(), domain.RunContext{}))

	assert.Equal(t, []string{"compile", "compile"}, tools)
	require.ErrorIs(t, logged, domain.ErrNoTestAssemblies)
	zErr, ok := logged.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "/repo/test/net40", zErr.Metadata()["dir"])
}

func TestBuild_ToolFailure(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.fs.EXPECT().Glob("/repo", []string{"src/**/*.csproj"}).
		Return([]string{"/repo/src/A.csproj", "/repo/src/B.csproj"}, nil)

	toolErr := errors.New("exit status 1")
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(toolErr)

	err := f.target(t, f.fs, "Build_net40")(context.Background(), domain.RunContext{})
	require.ErrorIs(t, err, toolErr)
}
