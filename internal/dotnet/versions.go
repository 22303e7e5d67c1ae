package dotnet

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// assemblyInfo is the data rendered into a version file.
type assemblyInfo struct {
	Title                string
	Description          string
	Version              string
	FileVersion          string
	InformationalVersion string
}

var assemblyInfoTemplates = map[string]*template.Template{
	".cs": template.Must(template.New("cs").Funcs(template.FuncMap{"q": quoteC}).Parse(csTemplate)),
	".fs": template.Must(template.New("fs").Funcs(template.FuncMap{"q": quoteC}).Parse(fsTemplate)),
	".vb": template.Must(template.New("vb").Funcs(template.FuncMap{"q": quoteVB}).Parse(vbTemplate)),
}

const csTemplate = `// <auto-generated/>
using System.Reflection;

[assembly: AssemblyTitleAttribute({{q .Title}})]
[assembly: AssemblyProductAttribute({{q .Title}})]
[assembly: AssemblyDescriptionAttribute({{q .Description}})]
[assembly: AssemblyVersionAttribute({{q .Version}})]
{{- if .FileVersion}}
[assembly: AssemblyFileVersionAttribute({{q .FileVersion}})]
{{- end}}
[assembly: AssemblyInformationalVersionAttribute({{q .InformationalVersion}})]
namespace System {
    internal static class AssemblyVersionInformation {
        internal const string Version = {{q .Version}};
        internal const string InformationalVersion = {{q .InformationalVersion}};
    }
}
`

const fsTemplate = `// <auto-generated/>
namespace System
open System.Reflection

[<assembly: AssemblyTitleAttribute({{q .Title}})>]
[<assembly: AssemblyProductAttribute({{q .Title}})>]
[<assembly: AssemblyDescriptionAttribute({{q .Description}})>]
[<assembly: AssemblyVersionAttribute({{q .Version}})>]
{{- if .FileVersion}}
[<assembly: AssemblyFileVersionAttribute({{q .FileVersion}})>]
{{- end}}
[<assembly: AssemblyInformationalVersionAttribute({{q .InformationalVersion}})>]
do ()

module internal AssemblyVersionInformation =
    let [<Literal>] Version = {{q .Version}}
    let [<Literal>] InformationalVersion = {{q .InformationalVersion}}
`

const vbTemplate = `' <auto-generated/>
Imports System.Reflection

<Assembly: AssemblyTitleAttribute({{q .Title}})>
<Assembly: AssemblyProductAttribute({{q .Title}})>
<Assembly: AssemblyDescriptionAttribute({{q .Description}})>
<Assembly: AssemblyVersionAttribute({{q .Version}})>
{{- if .FileVersion}}
<Assembly: AssemblyFileVersionAttribute({{q .FileVersion}})>
{{- end}}
<Assembly: AssemblyInformationalVersionAttribute({{q .InformationalVersion}})>
Friend NotInheritable Class AssemblyVersionInformation
    Friend Const Version As String = {{q .Version}}
    Friend Const InformationalVersion As String = {{q .InformationalVersion}}
End Class
`

var cEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

func quoteC(s string) string {
	return `"` + cEscaper.Replace(s) + `"`
}

var vbEscaper = strings.NewReplacer(`"`, `""`, "\r", "", "\n", " ")

func quoteVB(s string) string {
	return `"` + vbEscaper.Replace(s) + `"`
}

// RenderAssemblyInfo renders the assembly info source for path, choosing the language
// by its extension.
func RenderAssemblyInfo(cfg *domain.Config, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	tmpl, ok := assemblyInfoTemplates[ext]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersionFile, "cannot render assembly info"), "path", path)
	}

	version := domain.AssemblyVersion(cfg.Version)
	info := assemblyInfo{
		Title:                cfg.ProjectName,
		Description:          cfg.Summary,
		Version:              version,
		InformationalVersion: cfg.Version,
	}
	if cfg.SetAssemblyFileVersions {
		info.FileVersion = version
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to render assembly info"), "path", path)
	}
	return buf.Bytes(), nil
}

func (t *Targets) setVersions(_ context.Context, _ domain.RunContext) error {
	if len(t.cfg.VersionFiles) == 0 {
		t.logger.Info("No version files configured")
		return nil
	}

	for _, path := range t.cfg.VersionFiles {
		data, err := RenderAssemblyInfo(t.cfg, path)
		if err != nil {
			return err
		}
		written, err := t.fs.WriteIfChanged(path, data)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write version file"), "path", path)
		}
		if written {
			t.logger.Info("Updated " + t.rel(path) + " to " + t.cfg.Version)
		} else {
			t.logger.Info(t.rel(path) + " is up to date")
		}
	}
	return nil
}
