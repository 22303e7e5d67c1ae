// Package prompt implements interactive yes/no confirmation gates.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

var _ ports.Prompter = (*Prompter)(nil)

// Prompter implements ports.Prompter on a terminal.
type Prompter struct {
	logger    ports.Logger
	in        io.Reader
	out       io.Writer
	terminal  bool
	assumeYes bool
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithInput reads answers from r. terminal reports whether r is interactive.
func WithInput(r io.Reader, terminal bool) Option {
	return func(p *Prompter) {
		p.in = r
		p.terminal = terminal
	}
}

// WithOutput writes questions to w.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.out = w
	}
}

// WithAssumeYes accepts every question without asking.
func WithAssumeYes(yes bool) Option {
	return func(p *Prompter) {
		p.assumeYes = yes
	}
}

// New creates a Prompter reading from stdin.
func New(logger ports.Logger, opts ...Option) *Prompter {
	p := &Prompter{
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stderr,
		terminal: term.IsTerminal(int(os.Stdin.Fd())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Confirm asks question and reports whether the operator answered y or yes.
// A non-interactive stdin declines.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.assumeYes {
		p.logger.Info(question + " yes (assumed)")
		return true, nil
	}
	if !p.terminal {
		p.logger.Warn("stdin is not a terminal, declining: " + question)
		return false, nil
	}

	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, zerr.Wrap(err, "failed to write prompt")
	}

	answers := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		if err != nil && line == "" {
			errs <- err
			return
		}
		answers <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errs:
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, zerr.Wrap(err, "failed to read answer")
	case line := <-answers:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
