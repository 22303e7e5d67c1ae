package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dotbuild/internal/app"
	"go.trai.ch/dotbuild/internal/core/ports"
	_ "go.trai.ch/dotbuild/internal/wiring"
)

func resolve[T any](t *testing.T) T {
	t.Helper()
	v, _, err := graft.ExecuteFor[T](context.Background())
	require.NoError(t, err)
	return v
}

// TestGraftDependencies resolves every port the app depends on from the registered nodes.
// graft.AssertDepsValid cannot be used: it infers node IDs from the package name of the
// type passed to Dep, and every port lives in the same ports package.
func TestGraftDependencies(t *testing.T) {
	assert.NotNil(t, resolve[ports.ConfigLoader](t))
	assert.NotNil(t, resolve[ports.Executor](t))
	assert.NotNil(t, resolve[ports.Logger](t))
	assert.NotNil(t, resolve[ports.FileSystem](t))
	assert.NotNil(t, resolve[ports.Prompter](t))
	assert.NotNil(t, resolve[ports.Watcher](t))

	components := resolve[*app.Components](t)
	assert.Same(t, resolve[*app.App](t), components.App)
}
