package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/proper/internal/app"
	_ "go.trai.ch/proper/internal/wiring"
)

// TestGraftResolvesComponents checks that every registered node can be built
// and that the CLI entry type is reachable from the graph.
func TestGraftResolvesComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background(), graft.DisableCache())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.NotNil(t, components.Telemetry)
	require.NoError(t, components.Telemetry.Close())
}
