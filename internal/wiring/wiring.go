// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/proper/internal/adapters/cas"
	_ "go.trai.ch/proper/internal/adapters/config"
	_ "go.trai.ch/proper/internal/adapters/fs"
	_ "go.trai.ch/proper/internal/adapters/git"
	_ "go.trai.ch/proper/internal/adapters/lockfile"
	_ "go.trai.ch/proper/internal/adapters/logger"
	_ "go.trai.ch/proper/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/proper/internal/app"
	_ "go.trai.ch/proper/internal/engine/installer"
)
