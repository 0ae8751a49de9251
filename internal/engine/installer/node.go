package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/proper/internal/adapters/git"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/proper/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/proper/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/proper/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			git.NodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			repos, err := graft.Dep[ports.RepositoryProvider](ctx)
			if err != nil {
				return nil, err
			}

			materializer, err := graft.Dep[ports.Materializer](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewInstaller(repos, materializer, telemetry, log), nil
		},
	})
}
