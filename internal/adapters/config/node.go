package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest store Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_store"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewManifestStore(), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}
