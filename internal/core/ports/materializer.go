package ports

import (
	"context"

	"go.trai.ch/proper/internal/core/domain"
)

// Materializer copies checked-out trees into immutable version slots and
// registers them in the tool registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=materializer.go -destination=mocks/mock_materializer.go -package=mocks
type Materializer interface {
	// Materialize is idempotent per (package, version). An existing slot is
	// reused without copying.
	Materialize(ctx context.Context, layout domain.Layout, req domain.MaterializeRequest) (domain.MaterializedVersion, error)

	// Verify checks that every locked version has an intact slot.
	// Fails with domain.ErrVerifyFailed.
	Verify(ctx context.Context, layout domain.Layout, lock domain.Lockfile) error
}
