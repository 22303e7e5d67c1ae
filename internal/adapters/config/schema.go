package config

import "time"

// Buildfile represents the structure of the build.yaml configuration file.
type Buildfile struct {
	ProjectName string   `yaml:"project_name"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Authors     []string `yaml:"authors"`
	Tags        string   `yaml:"tags"`
	Copyright   string   `yaml:"copyright"`

	Version          string `yaml:"version"`
	ReleaseNotesFile string `yaml:"release_notes_file"`
	BuildMode        string `yaml:"build_mode"`

	BuildDir         string `yaml:"build_dir"`
	TestDir          string `yaml:"test_dir"`
	ReleaseDir       string `yaml:"release_dir"`
	NuGetDir         string `yaml:"nuget_dir"`
	DocOutputDir     string `yaml:"doc_output_dir"`
	DocContentDir    string `yaml:"doc_content_dir"`
	PackagesDir      string `yaml:"packages_dir"`
	BuildToolPackage string `yaml:"build_tool_package"`

	UseNuGet                bool  `yaml:"use_nuget"`
	SetAssemblyFileVersions *bool `yaml:"set_assembly_file_versions"`

	VersionFiles  []string `yaml:"version_files"`
	NuSpecPattern string   `yaml:"nuspec_pattern"`
	ReleaseFiles  []string `yaml:"release_files"`

	Builds []BuildDTO          `yaml:"builds"`
	Tools  map[string]*ToolDTO `yaml:"tools"`
	Git    GitDTO              `yaml:"git"`

	// ScaffoldFiles is a pointer so an explicit empty list can disable the default.
	ScaffoldFiles *[]string `yaml:"scaffold_files"`
	MetricsFile   string    `yaml:"metrics_file"`
}

// BuildDTO represents one build configuration.
type BuildDTO struct {
	Name           string   `yaml:"name"`
	BuildMode      string   `yaml:"build_mode"`
	Projects       []string `yaml:"projects"`
	TestProjects   []string `yaml:"test_projects"`
	TestAssemblies []string `yaml:"test_assemblies"`
	DisableTests   bool     `yaml:"disable_tests"`
}

// ToolDTO represents an external tool invocation. Unset fields keep their defaults.
type ToolDTO struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Dir     string        `yaml:"dir"`
	Timeout time.Duration `yaml:"timeout"`
}

// GitDTO represents the version-control settings.
type GitDTO struct {
	Remote      string `yaml:"remote"`
	DocsBranch  string `yaml:"docs_branch"`
	PushBranch  string `yaml:"push_branch"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}
