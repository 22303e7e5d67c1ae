// Package docgen runs the documentation generator script and collects its log lines.
package docgen

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
)

var _ ports.DocGenerator = (*Generator)(nil)

// Generator implements ports.DocGenerator by invoking the configured docs tool.
type Generator struct {
	executor ports.Executor
	cfg      *domain.Config
}

// New creates a Generator for the docs tool of cfg.
func New(executor ports.Executor, cfg *domain.Config) *Generator {
	return &Generator{executor: executor, cfg: cfg}
}

// templateData is exposed to the docs tool arguments.
type templateData struct {
	Target    string
	OutputDir string
	Version   string
}

// Generate runs the generator. A generator that exits non-zero yields an unsuccessful
// result rather than an error; errors are reserved for failures to run it at all.
func (g *Generator) Generate(ctx context.Context, target string) (*domain.DocResult, error) {
	cmd, err := g.cfg.Tools.Docs.Render("docs", g.cfg.Root, templateData{
		Target:    target,
		OutputDir: g.cfg.DocOutputDir,
		Version:   g.cfg.Version,
	})
	if err != nil {
		return nil, err
	}

	collector := &collector{}
	cmd.Stdout = collector.writer(false)
	cmd.Stderr = collector.writer(true)

	runErr := g.executor.Execute(ctx, cmd)
	collector.flush()

	result := &domain.DocResult{Success: runErr == nil, Lines: collector.lines}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, runErr
		}
	}
	return result, nil
}

// collector gathers the output of both streams as tagged lines in arrival order.
type collector struct {
	mu    sync.Mutex
	lines []domain.LogLine
	bufs  [2]bytes.Buffer
}

func (c *collector) writer(isError bool) *streamWriter {
	return &streamWriter{c: c, isError: isError}
}

func (c *collector) write(isError bool, p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := &c.bufs[index(isError)]
	buf.Write(p)
	for {
		line, err := buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			buf.Reset()
			buf.WriteString(line)
			return
		}
		c.lines = append(c.lines, domain.LogLine{Text: trimLine(line), IsError: isError})
	}
}

func (c *collector) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, isError := range []bool{false, true} {
		buf := &c.bufs[index(isError)]
		if buf.Len() > 0 {
			c.lines = append(c.lines, domain.LogLine{Text: trimLine(buf.String()), IsError: isError})
			buf.Reset()
		}
	}
}

func index(isError bool) int {
	if isError {
		return 1
	}
	return 0
}

func trimLine(line string) string {
	return string(bytes.TrimRight([]byte(line), "\r\n"))
}

type streamWriter struct {
	c       *collector
	isError bool
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.c.write(w.isError, p)
	return len(p), nil
}
