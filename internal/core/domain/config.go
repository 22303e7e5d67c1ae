// Package domain contains the core domain models for the build: configuration, build
// parameters, external tool invocations and the target dependency graph.
package domain

import (
	"strings"
	"time"
)

// Config is the resolved build configuration. It is constructed once at startup and
// is read-only afterwards.
type Config struct {
	// Root is the directory the configuration was loaded from. All relative paths are
	// resolved against it.
	Root string

	ProjectName string
	Summary     string
	Description string
	Authors     []string
	Tags        string
	Copyright   string

	// Version is the version stamped into assemblies and packages.
	Version string
	// ReleaseNotes are the notes of Version, taken from the release notes file.
	ReleaseNotes     string
	ReleaseNotesFile string

	// BuildMode is the default compiler configuration (e.g. "Release").
	BuildMode string

	BuildDir      string
	TestDir       string
	ReleaseDir    string
	NuGetDir      string
	DocOutputDir  string
	DocContentDir string
	PackagesDir   string

	// BuildToolPackage is the package directory of the build tool itself; CleanAll never deletes it.
	BuildToolPackage string

	// UseNuGet enables restoring packages with the external package manager.
	UseNuGet bool

	// SetAssemblyFileVersions also stamps AssemblyFileVersion next to AssemblyVersion.
	SetAssemblyFileVersions bool

	// VersionFiles are the generated assembly-info files written by SetVersions.
	VersionFiles []string

	// NuSpecPattern locates the package manifests.
	NuSpecPattern string

	// ReleaseFiles are glob patterns, relative to a build output directory, of the
	// files copied into the release layout.
	ReleaseFiles []string

	BuildParams []BuildParam

	Tools Tools
	Git   GitConfig

	// ScaffoldFiles must exist before any target runs.
	ScaffoldFiles []string

	// MetricsFile receives Prometheus metrics in text format after a run when set.
	MetricsFile string
}

// BuildParam is one build configuration variant, e.g. one target framework.
type BuildParam struct {
	// Name is the custom build name. Empty means DefaultBuildName.
	Name string
	// BuildMode overrides Config.BuildMode when set.
	BuildMode string
	// ProjectFiles are glob patterns of the application projects.
	ProjectFiles []string
	// TestProjectFiles are glob patterns of the test projects.
	TestProjectFiles []string
	// TestAssemblies are glob patterns, relative to the test output dir, of the compiled test assemblies.
	TestAssemblies []string
	// DisableTests skips building and running the test projects.
	DisableTests bool
}

// SimpleName returns the name used in target names and output directories.
func (p BuildParam) SimpleName() string {
	if p.Name == "" {
		return DefaultBuildName
	}
	return p.Name
}

// Mode returns the compiler configuration for the build, falling back to the given default.
func (p BuildParam) Mode(fallback string) string {
	if p.BuildMode != "" {
		return p.BuildMode
	}
	return fallback
}

// Tools holds the external tool invocations used by the targets.
type Tools struct {
	Restore ToolSpec
	Compile ToolSpec
	Test    ToolSpec
	Pack    ToolSpec
	Docs    ToolSpec
}

// ToolSpec describes how to invoke an external tool. Args are text/template strings.
type ToolSpec struct {
	Command string
	Args    []string
	// Dir is the working directory, relative to the config root. Empty means the root.
	Dir     string
	Timeout time.Duration
}

// IsZero reports whether the tool is not configured.
func (t ToolSpec) IsZero() bool {
	return t.Command == ""
}

// GitConfig configures the version-control publisher.
type GitConfig struct {
	Remote      string
	DocsBranch  string
	PushBranch  string
	AuthorName  string
	AuthorEmail string
	// Token authenticates pushes over HTTPS. Usually provided through GITHUB_TOKEN in .env.
	Token string
}

// AssemblyVersion returns the numeric part of a version, dropping pre-release and
// build metadata ("1.2.0-beta+5" becomes "1.2.0").
func AssemblyVersion(version string) string {
	if i := strings.IndexAny(version, "-+"); i >= 0 {
		return version[:i]
	}
	return version
}

// FileChange is a changed path in a working copy.
type FileChange struct {
	Path   string
	Status string
}

// LogLine is a single line emitted by the documentation generator.
type LogLine struct {
	Text    string
	IsError bool
}

// DocResult is the outcome of a documentation generator run.
type DocResult struct {
	Success bool
	Lines   []LogLine
}
