package domain

import (
	"context"
	"strings"
)

// TargetFunc is the action of a target.
type TargetFunc func(ctx context.Context, rc RunContext) error

// Target is a named, invocable unit of build automation.
type Target struct {
	Name        string
	Description string
	Action      TargetFunc
	// Dependencies are the targets this one runs after.
	Dependencies []string
}

// RunContext describes the invocation a target action is running under.
type RunContext struct {
	// Target is the name of the target being run.
	Target string
	// Single is set when the target was invoked through its single variant.
	Single bool
	// SkipConfirmation disables interactive confirmation gates.
	SkipConfirmation bool
}

// SingleName returns the single variant of a target name.
func SingleName(name string) string {
	return name + SingleSuffix
}

// ParseTargetName splits a requested name into the base target name and whether the
// single variant was requested.
func ParseTargetName(name string) (base string, single bool) {
	if base, ok := strings.CutSuffix(name, SingleSuffix); ok && base != "" {
		return base, true
	}
	return name, false
}

// BuildTargetName returns the name of the build target of a build configuration.
func BuildTargetName(p BuildParam) string {
	return "Build_" + p.SimpleName()
}
