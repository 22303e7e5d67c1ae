package config

import (
	"time"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// Tool keys accepted under "tools" in build.yaml.
const (
	ToolRestore = "restore"
	ToolCompile = "compile"
	ToolTest    = "test"
	ToolPack    = "pack"
	ToolDocs    = "docs"
)

const (
	defaultBuildMode        = "Release"
	defaultBuildDir         = "build"
	defaultTestDir          = "test"
	defaultReleaseDir       = "release"
	defaultNuGetDir         = "release/nuget"
	defaultDocOutputDir     = "release/documentation"
	defaultDocContentDir    = "doc"
	defaultPackagesDir      = "packages"
	defaultBuildToolPackage = "FAKE"
	defaultNuSpecPattern    = "nuget/*.nuspec"
	defaultRemote           = "origin"
	defaultDocsBranch       = "gh-pages"
	defaultPushBranch       = "develop"
	defaultDocsScript       = "docs/tools/generate.fsx"
	defaultTestTimeout      = 20 * time.Minute
)

var (
	defaultProjects       = []string{"src/**/*.csproj", "src/**/*.fsproj", "src/**/*.vbproj"}
	defaultTestProjects   = []string{"tests/**/*.csproj", "tests/**/*.fsproj", "tests/**/*.vbproj"}
	defaultTestAssemblies = []string{"**/*Tests*.dll"}
)

func defaultTools() map[string]domain.ToolSpec {
	return map[string]domain.ToolSpec{
		ToolRestore: {
			Command: "nuget",
			Args:    []string{"restore", "-PackagesDirectory", "{{.OutputDir}}"},
		},
		ToolCompile: {
			Command: "dotnet",
			Args:    []string{"build", "-c", "{{.Configuration}}", "-o", "{{.OutputDir}}"},
		},
		ToolTest: {
			Command: "dotnet",
			Args:    []string{"test", "--logger", "trx;LogFileName={{.LogFile}}"},
			Timeout: defaultTestTimeout,
		},
		ToolPack: {
			Command: "nuget",
			Args: []string{
				"pack",
				"-Version", "{{.Version}}",
				"-OutputDirectory", "{{.OutputDir}}",
				"-BasePath", "{{.BasePath}}",
				"-Properties", "{{.Properties}}",
			},
		},
		ToolDocs: {
			Command: "dotnet",
			Args:    []string{"fsi", "generate.fsx", "{{.Target}}"},
			Dir:     "docs/tools",
		},
	}
}

// mergeTool overlays the configured fields onto the default tool.
func mergeTool(base domain.ToolSpec, dto *ToolDTO) domain.ToolSpec {
	if dto == nil {
		return base
	}
	if dto.Command != "" {
		base.Command = dto.Command
		// A new command does not inherit the default arguments.
		base.Args = nil
		base.Dir = ""
	}
	if dto.Args != nil {
		base.Args = dto.Args
	}
	if dto.Dir != "" {
		base.Dir = dto.Dir
	}
	if dto.Timeout != 0 {
		base.Timeout = dto.Timeout
	}
	return base
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orDefaultSlice(value, fallback []string) []string {
	if len(value) == 0 {
		return fallback
	}
	return value
}
