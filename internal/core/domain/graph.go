package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the "runs after" graph of build targets.
type Graph struct {
	targets map[string]*Target
	order   []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[string]*Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "cannot add target"), "target", t.Name)
	}
	cp := *t
	cp.Dependencies = slices.Clone(t.Dependencies)
	g.targets[t.Name] = &cp
	g.order = append(g.order, t.Name)
	return nil
}

// AddDependency records that target runs after prerequisite.
func (g *Graph) AddDependency(target, prerequisite string) error {
	t, ok := g.targets[target]
	if !ok {
		return zerr.With(zerr.Wrap(ErrTargetNotFound, "cannot add dependency"), "target", target)
	}
	if !slices.Contains(t.Dependencies, prerequisite) {
		t.Dependencies = append(t.Dependencies, prerequisite)
	}
	return nil
}

// Get returns the target with the given name.
func (g *Graph) Get(name string) (*Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// Names returns the names of all targets, sorted.
func (g *Graph) Names() []string {
	names := slices.Clone(g.order)
	slices.Sort(names)
	return names
}

// Validate checks that every prerequisite exists and that the graph is acyclic.
func (g *Graph) Validate() error {
	state := make(map[string]int, len(g.targets)) // 0: unvisited, 1: visiting, 2: done
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = 1
		path = append(path, name)

		for _, dep := range g.targets[name].Dependencies {
			if _, ok := g.targets[dep]; !ok {
				err := zerr.Wrap(ErrMissingDependency, "target runs after an unknown target")
				err = zerr.With(err, "target", name)
				return zerr.With(err, "dependency", dep)
			}
			switch state[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.order {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid target graph"), "cycle", strings.Join(cycle, " -> "))
}

// Plan returns the transitive prerequisites of name followed by name itself. Targets
// are visited depth-first in declaration order and appear once.
// It assumes Validate has been called and returned nil.
func (g *Graph) Plan(name string) ([]*Target, error) {
	if _, ok := g.targets[name]; !ok {
		return nil, zerr.With(zerr.Wrap(ErrTargetNotFound, "cannot plan target"), "target", name)
	}

	seen := make(map[string]bool, len(g.targets))
	var plan []*Target

	var visit func(n string)
	visit = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		t := g.targets[n]
		for _, dep := range t.Dependencies {
			visit(dep)
		}
		plan = append(plan, t)
	}
	visit(name)

	return plan, nil
}
