package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/dotbuild/internal/app"
	_ "go.trai.ch/dotbuild/internal/wiring"
)

func TestNewApp_Success(t *testing.T) {
	components, err := app.NewApp()
	require.NoError(t, err)

	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.NotNil(t, components.LogMode)

	again, err := app.NewApp()
	require.NoError(t, err)
	require.Same(t, components.App, again.App, "cacheable nodes resolve to the same instance")
}
