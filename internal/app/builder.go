package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dotbuild/internal/core/ports"
)

// LogMode switches the log output format.
type LogMode interface {
	SetJSON(enable bool)
}

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App     *App
	Logger  ports.Logger
	LogMode LogMode
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, mode LogMode) *Components {
	return &Components{
		App:     app,
		Logger:  logger,
		LogMode: mode,
	}
}

// NewApp resolves the application components from the registered Graft nodes.
// The wiring package must be imported for the nodes to be registered.
func NewApp() (*Components, error) {
	c, _, err := graft.ExecuteFor[*Components](context.Background())
	return c, err
}
