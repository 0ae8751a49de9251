package app

import (
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/proper/internal/tui"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
	// Progress receives the telemetry stream for the optional progress view.
	Progress *tui.Feed
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, telemetry ports.Telemetry, progress *tui.Feed) *Components {
	return &Components{
		App:       app,
		Logger:    logger,
		Telemetry: telemetry,
		Progress:  progress,
	}
}
