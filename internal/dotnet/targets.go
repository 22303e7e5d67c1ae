// Package dotnet defines the build targets of a .NET library: cleaning, package
// restore, assembly versioning, compilation and tests per build configuration,
// release layout, packaging, documentation and publishing.
package dotnet

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
)

// Target names.
const (
	TargetClean            = "Clean"
	TargetCleanAll         = "CleanAll"
	TargetRestorePackages  = "RestorePackages"
	TargetSetVersions      = "SetVersions"
	TargetCopyToRelease    = "CopyToRelease"
	TargetNuGet            = "NuGet"
	TargetLocalDoc         = "LocalDoc"
	TargetGithubDoc        = "GithubDoc"
	TargetReleaseGithubDoc = "ReleaseGithubDoc"
	TargetAll              = domain.DefaultTarget
	TargetVersionBump      = "VersionBump"
	TargetRelease          = "Release"
)

// Deps are the collaborators of the build targets.
type Deps struct {
	Config   *domain.Config
	Logger   ports.Logger
	Executor ports.Executor
	FS       ports.FileSystem
	VCS      ports.VersionControl
	Prompter ports.Prompter
	Docs     ports.DocGenerator
}

// Targets holds the actions of every build target.
type Targets struct {
	cfg      *domain.Config
	logger   ports.Logger
	executor ports.Executor
	fs       ports.FileSystem
	vcs      ports.VersionControl
	prompter ports.Prompter
	docs     ports.DocGenerator
}

// New creates the build targets.
func New(d Deps) *Targets {
	return &Targets{
		cfg:      d.Config,
		logger:   d.Logger,
		executor: d.Executor,
		fs:       d.FS,
		vcs:      d.VCS,
		prompter: d.Prompter,
		docs:     d.Docs,
	}
}

// Graph registers every target with its "runs after" relations and validates the result.
func (t *Targets) Graph() (*domain.Graph, error) {
	g := domain.NewGraph()

	builds := make([]string, 0, len(t.cfg.BuildParams))
	for _, p := range t.cfg.BuildParams {
		builds = append(builds, domain.BuildTargetName(p))
	}

	targets := []*domain.Target{
		{
			Name:        TargetClean,
			Description: "Remove the build, test, release, package and documentation outputs",
			Action:      t.clean,
		},
		{
			Name:        TargetCleanAll,
			Description: "Clean, and remove every restored package except the build tool",
			Action:      t.cleanAll,
		},
		{
			Name:         TargetRestorePackages,
			Description:  "Restore the package dependencies",
			Action:       t.restorePackages,
			Dependencies: []string{TargetClean},
		},
		{
			Name:         TargetSetVersions,
			Description:  "Write the assembly info files for the current version",
			Action:       t.setVersions,
			Dependencies: []string{TargetRestorePackages},
		},
	}
	for _, p := range t.cfg.BuildParams {
		targets = append(targets, &domain.Target{
			Name:         domain.BuildTargetName(p),
			Description:  "Compile and test the " + p.SimpleName() + " build",
			Action:       t.build(p),
			Dependencies: []string{TargetSetVersions},
		})
	}
	targets = append(targets,
		&domain.Target{
			Name:         TargetCopyToRelease,
			Description:  "Copy the build outputs into the release layout",
			Action:       t.copyToRelease,
			Dependencies: builds,
		},
		&domain.Target{
			Name:         TargetLocalDoc,
			Description:  "Generate the documentation for local browsing",
			Action:       t.docTarget(TargetLocalDoc),
			Dependencies: []string{TargetCopyToRelease},
		},
		&domain.Target{
			Name:         TargetAll,
			Description:  "Build, test and document every configuration",
			Action:       marker,
			Dependencies: []string{TargetLocalDoc},
		},
		&domain.Target{
			Name:         TargetVersionBump,
			Description:  "Commit and push the version change",
			Action:       t.versionBump,
			Dependencies: []string{TargetAll},
		},
		&domain.Target{
			Name:         TargetNuGet,
			Description:  "Create the NuGet packages",
			Action:       t.nuget,
			Dependencies: []string{TargetAll},
		},
		&domain.Target{
			Name:         TargetGithubDoc,
			Description:  "Generate the documentation for the project site",
			Action:       t.docTarget(TargetGithubDoc),
			Dependencies: []string{TargetAll},
		},
		&domain.Target{
			Name:         TargetReleaseGithubDoc,
			Description:  "Publish the documentation to the docs branch",
			Action:       t.releaseGithubDoc,
			Dependencies: []string{TargetGithubDoc},
		},
		&domain.Target{
			Name:         TargetRelease,
			Description:  "Package and publish a release",
			Action:       marker,
			Dependencies: []string{TargetNuGet, TargetReleaseGithubDoc},
		},
	)

	for _, target := range targets {
		if err := g.AddTarget(target); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// marker is the action of targets that only group their prerequisites.
func marker(context.Context, domain.RunContext) error {
	return nil
}
