// Package config provides the configuration loader for dotbuild.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

var validBuildNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Load reads the configuration file at path and returns the resolved configuration.
// Relative directories are resolved against the directory of the file.
func (l *Loader) Load(path string) (*domain.Config, error) {
	var file Buildfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve config directory")
	}

	env, err := l.readEnvironment(filepath.Join(root, domain.EnvFileName))
	if err != nil {
		return nil, err
	}

	cfg, err := l.buildConfig(root, &file, env)
	if err != nil {
		return nil, err
	}

	if err := l.resolveVersion(cfg, env); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := checkScaffold(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) buildConfig(root string, file *Buildfile, env *environment) (*domain.Config, error) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	cfg := &domain.Config{
		Root:             root,
		ProjectName:      file.ProjectName,
		Summary:          file.Summary,
		Description:      file.Description,
		Authors:          file.Authors,
		Tags:             file.Tags,
		Copyright:        file.Copyright,
		Version:          file.Version,
		ReleaseNotesFile: abs(orDefault(file.ReleaseNotesFile, domain.ReleaseNotesFileName)),
		BuildMode:        orDefault(file.BuildMode, defaultBuildMode),
		BuildDir:         abs(orDefault(file.BuildDir, defaultBuildDir)),
		TestDir:          abs(orDefault(file.TestDir, defaultTestDir)),
		ReleaseDir:       abs(orDefault(file.ReleaseDir, defaultReleaseDir)),
		NuGetDir:         abs(orDefault(file.NuGetDir, defaultNuGetDir)),
		DocOutputDir:     abs(orDefault(file.DocOutputDir, defaultDocOutputDir)),
		DocContentDir:    abs(orDefault(file.DocContentDir, defaultDocContentDir)),
		PackagesDir:      abs(orDefault(file.PackagesDir, defaultPackagesDir)),
		BuildToolPackage: orDefault(file.BuildToolPackage, defaultBuildToolPackage),
		UseNuGet:         file.UseNuGet,
		NuSpecPattern:    orDefault(file.NuSpecPattern, defaultNuSpecPattern),
		MetricsFile:      abs(orDefault(env.Get(EnvMetricsFile), file.MetricsFile)),
	}

	cfg.SetAssemblyFileVersions = true
	if file.SetAssemblyFileVersions != nil {
		cfg.SetAssemblyFileVersions = *file.SetAssemblyFileVersions
	}

	for _, vf := range file.VersionFiles {
		cfg.VersionFiles = append(cfg.VersionFiles, abs(vf))
	}

	cfg.ReleaseFiles = file.ReleaseFiles
	if len(cfg.ReleaseFiles) == 0 && cfg.ProjectName != "" {
		cfg.ReleaseFiles = []string{
			cfg.ProjectName + ".dll",
			cfg.ProjectName + ".xml",
			cfg.ProjectName + ".pdb",
		}
	}

	cfg.BuildParams = buildParams(file.Builds)

	tools, err := l.resolveTools(file.Tools)
	if err != nil {
		return nil, err
	}
	cfg.Tools = tools

	cfg.Git = domain.GitConfig{
		Remote:      orDefault(file.Git.Remote, defaultRemote),
		DocsBranch:  orDefault(file.Git.DocsBranch, defaultDocsBranch),
		PushBranch:  orDefault(file.Git.PushBranch, defaultPushBranch),
		AuthorName:  file.Git.AuthorName,
		AuthorEmail: file.Git.AuthorEmail,
		Token:       env.Get(EnvGitHubToken),
	}

	switch {
	case file.ScaffoldFiles != nil:
		for _, f := range *file.ScaffoldFiles {
			cfg.ScaffoldFiles = append(cfg.ScaffoldFiles, abs(f))
		}
	case file.Tools[ToolDocs] == nil:
		cfg.ScaffoldFiles = []string{abs(defaultDocsScript)}
	}

	return cfg, nil
}

func buildParams(builds []BuildDTO) []domain.BuildParam {
	if len(builds) == 0 {
		builds = []BuildDTO{{}}
	}

	params := make([]domain.BuildParam, 0, len(builds))
	for _, b := range builds {
		params = append(params, domain.BuildParam{
			Name:             b.Name,
			BuildMode:        b.BuildMode,
			ProjectFiles:     orDefaultSlice(b.Projects, defaultProjects),
			TestProjectFiles: orDefaultSlice(b.TestProjects, defaultTestProjects),
			TestAssemblies:   orDefaultSlice(b.TestAssemblies, defaultTestAssemblies),
			DisableTests:     b.DisableTests,
		})
	}
	return params
}

func (l *Loader) resolveTools(configured map[string]*ToolDTO) (domain.Tools, error) {
	defaults := defaultTools()
	for key := range configured {
		if _, ok := defaults[key]; !ok {
			l.Logger.Warn(fmt.Sprintf("unknown tool %q in %s is ignored", key, domain.ConfigFileName))
		}
	}

	tools := domain.Tools{
		Restore: mergeTool(defaults[ToolRestore], configured[ToolRestore]),
		Compile: mergeTool(defaults[ToolCompile], configured[ToolCompile]),
		Test:    mergeTool(defaults[ToolTest], configured[ToolTest]),
		Pack:    mergeTool(defaults[ToolPack], configured[ToolPack]),
		Docs:    mergeTool(defaults[ToolDocs], configured[ToolDocs]),
	}

	for key, spec := range map[string]domain.ToolSpec{
		ToolRestore: tools.Restore,
		ToolCompile: tools.Compile,
		ToolTest:    tools.Test,
		ToolPack:    tools.Pack,
		ToolDocs:    tools.Docs,
	} {
		if spec.Timeout < 0 {
			return domain.Tools{}, zerr.With(zerr.Wrap(domain.ErrInvalidToolArgs, "negative timeout"), "tool", key)
		}
	}
	return tools, nil
}

// resolveVersion picks the version from the environment, the config file or the
// release notes, in that order. Release notes are read whenever the file exists.
func (l *Loader) resolveVersion(cfg *domain.Config, env *environment) error {
	if v := env.Get(EnvVersion); v != "" {
		cfg.Version = v
	}

	data, err := os.ReadFile(cfg.ReleaseNotesFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if cfg.Version == "" {
			return zerr.With(zerr.Wrap(domain.ErrMissingVersion, "no version configured and no release notes"),
				"release_notes_file", cfg.ReleaseNotesFile)
		}
		l.Logger.Warn("release notes not found: " + cfg.ReleaseNotesFile)
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to read release notes"), "path", cfg.ReleaseNotesFile)
	}

	notes, err := ParseReleaseNotes(data)
	if err != nil {
		if cfg.Version != "" {
			l.Logger.Warn("release notes contain no version: " + cfg.ReleaseNotesFile)
			return nil
		}
		return zerr.With(err, "path", cfg.ReleaseNotesFile)
	}

	if cfg.Version == "" {
		cfg.Version = notes.Version
	}
	cfg.ReleaseNotes = strings.Join(notes.Notes, "\n")
	return nil
}

func validate(cfg *domain.Config) error {
	if cfg.ProjectName == "" {
		return zerr.Wrap(domain.ErrMissingProjectName, "invalid configuration")
	}

	seen := make(map[string]bool, len(cfg.BuildParams))
	for _, p := range cfg.BuildParams {
		name := p.SimpleName()
		if !validBuildNameRegex.MatchString(name) {
			return zerr.With(zerr.Wrap(domain.ErrInvalidBuildName, "invalid configuration"), "build", name)
		}
		if seen[name] {
			return zerr.With(zerr.Wrap(domain.ErrDuplicateBuildName, "invalid configuration"), "build", name)
		}
		seen[name] = true
	}

	for _, vf := range cfg.VersionFiles {
		switch strings.ToLower(filepath.Ext(vf)) {
		case ".cs", ".fs", ".vb":
		default:
			return zerr.With(zerr.Wrap(domain.ErrUnsupportedVersionFile, "invalid configuration"), "path", vf)
		}
	}
	return nil
}

func checkScaffold(cfg *domain.Config) error {
	for _, f := range cfg.ScaffoldFiles {
		if _, err := os.Stat(f); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrMissingScaffoldFile, "invalid project layout"), "path", f)
		}
	}
	return nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the operator
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
