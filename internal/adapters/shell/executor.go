// Package shell provides the executor that runs external build tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/magefile/mage/sh"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Execute waits for output pipes after the process is killed.
const waitDelay = 5 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor logging tool output through logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command) error {
	if cmd.Name == "" {
		return nil
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "error"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	var stdout, stderr io.Writer = stdoutLog, stderrLog
	if cmd.Stdout != nil {
		stdout = cmd.Stdout
	}
	if cmd.Stderr != nil {
		stderr = cmd.Stderr
	}

	if cmd.LogFile != "" {
		logFile, err := openLogFile(cmd.LogFile)
		if err != nil {
			return err
		}
		defer func() { _ = logFile.Close() }()

		shared := &lockedWriter{w: logFile}
		stdout = io.MultiWriter(stdout, shared)
		stderr = io.MultiWriter(stderr, shared)
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // tool commands come from the build configuration
	c.Dir = cmd.Dir
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)
	c.Stdout = stdout
	c.Stderr = stderr
	c.WaitDelay = waitDelay

	err := c.Run()
	if err == nil {
		return nil
	}

	wrapped := zerr.Wrap(err, domain.ErrToolFailed.Error())
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		wrapped = zerr.With(wrapped, "timeout", cmd.Timeout.String())
	}
	wrapped = zerr.With(wrapped, "tool", toolName(cmd))
	return zerr.With(wrapped, "exit_code", exitCode(err))
}

func toolName(cmd *domain.Command) string {
	if cmd.Tool != "" {
		return cmd.Tool
	}
	return cmd.Name
}

// exitCode returns the exit status of a finished command, or -1 if it never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1
	}
	return sh.ExitStatus(exitErr)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create log directory"), "path", path)
	}
	f, err := os.Create(path) //nolint:gosec // path comes from the build configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create log file"), "path", path)
	}
	return f, nil
}

// lockedWriter serializes writes from the stdout and stderr copy goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Error(zerr.New(msg))
	}
}

// resolveEnvironment returns the system environment with the command's variables
// applied on top. Later entries win.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(cmdEnv))
	for _, entry := range slices.Concat(sysEnv, cmdEnv) {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
