// Package linear provides a synchronous, line-oriented renderer for build runs.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/ui/output"
	"go.trai.ch/dotbuild/internal/ui/style"
)

const reportRule = "---------------------------------------------------------------------"

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer. It announces each target as it starts and
// finishes, and prints a build time report when stopped.
type Renderer struct {
	w      io.Writer
	output *termenv.Output
	lip    *lipgloss.Renderer

	mu        sync.Mutex
	requested string
	planned   []string
	running   map[string]*targetState // spanID -> target state
	finished  []*targetState
}

type targetState struct {
	name      string
	startTime time.Time
	duration  time.Duration
	err       error
}

// NewRenderer creates a new Renderer writing to w, or to stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	return NewRendererWithProfile(w, output.ColorProfileANSI)
}

// NewRendererWithProfile creates a new Renderer with a custom profile selector.
func NewRendererWithProfile(w io.Writer, profileFn func() termenv.Profile) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	lip := lipgloss.NewRenderer(w)
	lip.SetColorProfile(profileFn())

	return &Renderer{
		w:       w,
		output:  output.NewWithProfile(w, profileFn),
		lip:     lip,
		running: make(map[string]*targetState),
	}
}

// OnPlan prints the planned targets.
func (r *Renderer) OnPlan(targets []string, requested string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requested = requested
	r.planned = append([]string(nil), targets...)
	r.finished = nil

	chain := strings.Join(targets, " "+style.Arrow+" ")
	_, _ = fmt.Fprintf(r.w, "Running %s (%d target(s)): %s\n",
		requested, len(targets), style.Muted(r.lip).Render(chain))
}

// OnTargetStart prints the target banner.
func (r *Renderer) OnTargetStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running[spanID] = &targetState{name: name, startTime: startTime}
	_, _ = fmt.Fprintln(r.w, style.Banner(r.lip).Render("Starting Target: "+name))
}

// OnTargetComplete prints the completion status of a target.
func (r *Renderer) OnTargetComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.running[spanID]
	if !ok {
		return
	}
	delete(r.running, spanID)

	target.duration = endTime.Sub(target.startTime)
	target.err = err
	r.finished = append(r.finished, target)

	duration := style.Muted(r.lip).Render(formatDuration(target.duration))
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s failed after %s: %v\n", symbol, target.name, duration, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.w, "%s Finished Target: %s in %s\n", symbol, target.name, duration)
}

// Stop prints the build time report. Planned targets that never ran are listed as skipped.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.planned) == 0 && len(r.finished) == 0 {
		return nil
	}

	width := len("Target")
	for _, name := range r.planned {
		width = max(width, len(name))
	}
	for _, t := range r.finished {
		width = max(width, len(t.name))
	}
	cell := r.lip.NewStyle().Width(width + 4)

	var sb strings.Builder
	sb.WriteString(reportRule + "\n")
	sb.WriteString("Build Time Report\n")
	sb.WriteString(reportRule + "\n")
	sb.WriteString(cell.Render("Target") + "Duration\n")
	sb.WriteString(cell.Render("------") + "--------\n")

	var total time.Duration
	failed := false
	ran := make(map[string]bool, len(r.finished))
	for _, t := range r.finished {
		ran[t.name] = true
		total += t.duration
		line := formatDuration(t.duration)
		if t.err != nil {
			failed = true
			line += " " + style.Cross
		}
		sb.WriteString(cell.Render(t.name) + line + "\n")
	}
	for _, name := range r.planned {
		if !ran[name] {
			sb.WriteString(cell.Render(name) + style.Muted(r.lip).Render("skipped") + "\n")
		}
	}

	sb.WriteString(cell.Render("Total:") + formatDuration(total) + "\n")
	status := r.output.String("Ok").Foreground(termenv.ANSIGreen).String()
	if failed {
		status = r.output.String("Failure").Foreground(termenv.ANSIRed).String()
	}
	sb.WriteString(cell.Render("Status:") + status + "\n")
	sb.WriteString(reportRule + "\n")

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// formatDuration renders d as hh:mm:ss.mmm.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}
