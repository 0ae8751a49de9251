package tui

import (
	"context"

	"github.com/grindlemire/graft"
)

// FeedNodeID is the unique identifier for the progress feed Graft node.
const FeedNodeID graft.ID = "tui.feed"

func init() {
	graft.Register(graft.Node[*Feed]{
		ID:        FeedNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Feed, error) {
			return NewFeed(), nil
		},
	})
}
