package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/proper/internal/adapters/telemetry/progrock"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/proper/internal/tui"
)

func TestRecorder_RecordAndClose(t *testing.T) {
	recorder := progrock.NewRecorder(tui.NewFeed())
	require.NotNil(t, recorder)

	ctx, vertex := recorder.Record(context.Background(), "elm-lang/core")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("resolved 5.1.1\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	_, failed := recorder.Record(context.Background(), "elm-lang/html")
	_, err = failed.Stderr().Write([]byte("no such tag\n"))
	require.NoError(t, err)
	failed.Complete(errors.New("checkout failed"))

	_, cached := recorder.Record(context.Background(), "elm-lang/svg")
	cached.Cached()
	cached.Complete(nil)

	assert.NoError(t, recorder.Close())
}
