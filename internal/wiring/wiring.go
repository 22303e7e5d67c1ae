// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dotbuild/internal/adapters/config"
	_ "go.trai.ch/dotbuild/internal/adapters/fs"
	_ "go.trai.ch/dotbuild/internal/adapters/logger"
	_ "go.trai.ch/dotbuild/internal/adapters/prompt"
	_ "go.trai.ch/dotbuild/internal/adapters/shell"
	_ "go.trai.ch/dotbuild/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/dotbuild/internal/app"
)
