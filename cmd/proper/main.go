// Package main is the entry point for the proper dependency installer.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/cmd/proper/commands"
	"go.trai.ch/proper/internal/app"
	"go.trai.ch/proper/internal/core/domain"
	_ "go.trai.ch/proper/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Every invocation gets fresh components; the telemetry tape is closed on exit.
	components, _, err := graft.ExecuteFor[*app.Components](ctx, graft.DisableCache())
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := components.Telemetry.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App, commands.WithProgress(components.Progress))

	if err := cli.Execute(ctx); err != nil {
		// Each failed dependency has already been reported.
		if errors.Is(err, domain.ErrInstallFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
