package dotnet

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// packData is exposed to the pack tool arguments.
type packData struct {
	Name         string
	ID           string
	Version      string
	Authors      string
	Description  string
	Summary      string
	Tags         string
	Copyright    string
	ReleaseNotes string
	OutputDir    string
	BasePath     string
	// Properties holds the metadata above in the "key=value;..." form of nuget -Properties.
	Properties string
}

// propertyEscaper keeps values from splitting the -Properties list.
var propertyEscaper = strings.NewReplacer(";", ",", "\r", "", "\n", " ")

func (t *Targets) nuget(ctx context.Context, _ domain.RunContext) error {
	manifests, err := t.fs.Glob(t.cfg.Root, []string{t.cfg.NuSpecPattern})
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		t.logger.Warn("No package manifests match " + t.cfg.NuSpecPattern)
		return nil
	}

	for _, manifest := range manifests {
		for _, p := range t.cfg.BuildParams {
			data := t.packData(p)
			cmd, err := t.cfg.Tools.Pack.Render("pack", t.cfg.Root, data, manifest)
			if err != nil {
				return err
			}
			t.logger.Info("Packing " + t.rel(manifest) + " for " + p.SimpleName())
			if err := t.executor.Execute(ctx, cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

// packOutputDir returns the package output directory of p. Several build configurations
// produce packages with the same id and version, so each gets its own directory.
func (t *Targets) packOutputDir(p domain.BuildParam) string {
	if len(t.cfg.BuildParams) > 1 {
		return filepath.Join(t.cfg.NuGetDir, p.SimpleName())
	}
	return t.cfg.NuGetDir
}

func (t *Targets) packData(p domain.BuildParam) packData {
	data := packData{
		Name:         p.SimpleName(),
		ID:           t.cfg.ProjectName,
		Version:      t.cfg.Version,
		Authors:      strings.Join(t.cfg.Authors, ", "),
		Description:  t.cfg.Description,
		Summary:      t.cfg.Summary,
		Tags:         t.cfg.Tags,
		Copyright:    t.cfg.Copyright,
		ReleaseNotes: t.cfg.ReleaseNotes,
		OutputDir:    t.packOutputDir(p),
		BasePath:     t.cfg.ReleaseLibDir(p),
	}

	props := []struct{ key, value string }{
		{"id", data.ID},
		{"version", data.Version},
		{"authors", data.Authors},
		{"description", data.Description},
		{"summary", data.Summary},
		{"tags", data.Tags},
		{"copyright", data.Copyright},
		{"releaseNotes", data.ReleaseNotes},
	}
	parts := make([]string, 0, len(props))
	for _, prop := range props {
		parts = append(parts, prop.key+"="+propertyEscaper.Replace(prop.value))
	}
	data.Properties = strings.Join(parts, ";")
	return data
}
