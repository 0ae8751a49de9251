package ports

import (
	"context"

	"go.trai.ch/proper/internal/core/domain"
)

// Repository is a handle on the durable local clone of one remote.
// Handles for different dependencies operate on independent paths and can be
// used concurrently.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type Repository interface {
	// EnsureCloned clones the remote if the local clone is absent.
	// Fails with domain.ErrSourceUnavailable.
	EnsureCloned(ctx context.Context) error

	// SyncDefaultBranch checks out the default branch and fast-forwards it.
	// Fails with domain.ErrSync on a dirty tree or diverged history.
	SyncDefaultBranch(ctx context.Context) error

	// ListTags returns every tag known as of the last sync.
	// Fails with domain.ErrTagList.
	ListTags(ctx context.Context) ([]string, error)

	// Checkout switches the working tree to a tag returned by ListTags.
	// Fails with domain.ErrCheckout.
	Checkout(ctx context.Context, tag string) error

	// WorkingTree returns the path of the local clone.
	WorkingTree() string
}

// RepositoryProvider opens repository handles.
type RepositoryProvider interface {
	// Open binds a handle to the declaration's source and a local clone path.
	// It does not touch the network.
	Open(decl domain.DependencyDeclaration, opts domain.CloneOptions) (Repository, error)
}
