package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/proper/internal/core/ports"
)

// NodeID is the unique identifier for the git repository provider Graft node.
const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.RepositoryProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryProvider, error) {
			return NewProvider(), nil
		},
	})
}
