package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/internal/adapters/config"
	properfs "go.trai.ch/proper/internal/adapters/fs"
	"go.trai.ch/proper/internal/adapters/logger"
	"go.trai.ch/proper/internal/core/ports"
)

// NodeID is the unique identifier for the materializer Graft node.
const NodeID graft.ID = "adapter.materializer"

func init() {
	graft.Register(graft.Node[ports.Materializer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ManifestNodeID, properfs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Materializer, error) {
			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*properfs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMaterializer(manifests, hasher, log), nil
		},
	})
}
