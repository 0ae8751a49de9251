package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/proper/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/proper/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/proper/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/proper/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/proper/internal/engine/installer"
	"go.trai.ch/proper/internal/tui"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			config.ManifestNodeID,
			lockfile.NodeID,
			installer.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
			tui.FeedNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	inst, err := graft.Dep[*installer.Installer](ctx)
	if err != nil {
		return nil, err
	}

	materializer, err := graft.Dep[ports.Materializer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, manifests, locks, inst, materializer, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	progress, err := graft.Dep[*tui.Feed](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry, progress), nil
}
