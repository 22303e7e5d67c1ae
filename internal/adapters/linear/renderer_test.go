package linear_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/dotbuild/internal/adapters/linear"
)

func asciiProfile() termenv.Profile { return termenv.Ascii }

func TestRenderer_TargetLifecycle(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRendererWithProfile(&out, asciiProfile)

	r.OnPlan([]string{"Clean", "Build_main", "All"}, "All")
	if !strings.Contains(out.String(), "Running All (3 target(s)): Clean → Build_main → All") {
		t.Errorf("Expected plan message, got: %s", out.String())
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.OnTargetStart("span1", "Clean", start)
	if !strings.Contains(out.String(), "Starting Target: Clean") {
		t.Errorf("Expected target banner, got: %s", out.String())
	}

	r.OnTargetComplete("span1", start.Add(1500*time.Millisecond), nil)
	if !strings.Contains(out.String(), "✓ Finished Target: Clean in 00:00:01.500") {
		t.Errorf("Expected completion message, got: %s", out.String())
	}

	r.OnTargetStart("span2", "Build_main", start)
	r.OnTargetComplete("span2", start.Add(2*time.Minute), errors.New("compiler exited with 1"))
	if !strings.Contains(out.String(), "✗ Build_main failed after 00:02:00.000: compiler exited with 1") {
		t.Errorf("Expected failure message, got: %s", out.String())
	}

	out.Reset()
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	want := []string{
		"Build Time Report",
		"Target        Duration",
		"Clean         00:00:01.500",
		"Build_main    00:02:00.000 ✗",
		"All           skipped",
		"Total:        00:02:01.500",
		"Status:       Failure",
	}
	report := out.String()
	for _, line := range want {
		if !strings.Contains(report, line) {
			t.Errorf("Expected %q in report, got:\n%s", line, report)
		}
	}
	if strings.Contains(report, "\x1b[") {
		t.Errorf("Expected no ANSI codes with the ASCII profile, got: %q", report)
	}
}

func TestRenderer_SuccessReport(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRendererWithProfile(&out, asciiProfile)

	start := time.Now()
	r.OnPlan([]string{"Clean"}, "Clean_single")
	r.OnTargetStart("span1", "Clean", start)
	r.OnTargetComplete("span1", start.Add(time.Millisecond), nil)

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !strings.Contains(out.String(), "Status:   Ok") {
		t.Errorf("Expected Ok status, got:\n%s", out.String())
	}
}

func TestRenderer_UnknownSpan(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRendererWithProfile(&out, asciiProfile)

	r.OnTargetComplete("missing", time.Now(), nil)
	if out.Len() != 0 {
		t.Errorf("Expected no output for an unknown span, got: %s", out.String())
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no report without a plan, got: %s", out.String())
	}
}

func TestRenderer_ANSIColors(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRendererWithProfile(&out, func() termenv.Profile { return termenv.ANSI })

	start := time.Now()
	r.OnTargetStart("span1", "Clean", start)
	r.OnTargetComplete("span1", start, nil)

	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("Expected ANSI codes, got: %q", out.String())
	}
}
