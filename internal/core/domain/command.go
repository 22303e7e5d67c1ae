package domain

import (
	"io"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"go.trai.ch/zerr"
)

// Command is a fully resolved external tool invocation.
type Command struct {
	// Tool is the tool key the command was rendered from (e.g. "compile").
	Tool    string
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
	// LogFile additionally receives the combined output of the command when set.
	LogFile string
	// Stdout and Stderr override the default line-wise logging of the command output.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Render resolves the tool against the template data. Inputs are appended after the
// rendered arguments. Relative working directories are resolved against root.
func (t ToolSpec) Render(tool, root string, data any, inputs ...string) (*Command, error) {
	if t.IsZero() {
		return nil, zerr.With(zerr.Wrap(ErrMissingTool, "cannot render command"), "tool", tool)
	}

	args := make([]string, 0, len(t.Args)+len(inputs))
	for _, raw := range t.Args {
		arg, err := renderArg(tool, raw, data)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	args = append(args, inputs...)

	dir := t.Dir
	switch {
	case dir == "":
		dir = root
	case !filepath.IsAbs(dir):
		dir = filepath.Join(root, dir)
	}

	return &Command{
		Tool:    tool,
		Name:    t.Command,
		Args:    args,
		Dir:     dir,
		Timeout: t.Timeout,
	}, nil
}

func renderArg(tool, raw string, data any) (string, error) {
	if !strings.Contains(raw, "{{") {
		return raw, nil
	}
	tmpl, err := template.New(tool).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", argError(tool, raw, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", argError(tool, raw, err)
	}
	return sb.String(), nil
}

func argError(tool, raw string, cause error) error {
	err := zerr.Wrap(ErrInvalidToolArgs, cause.Error())
	err = zerr.With(err, "tool", tool)
	return zerr.With(err, "arg", raw)
}
