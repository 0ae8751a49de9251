package ports

import "go.trai.ch/proper/internal/core/domain"

// LockStore persists the manifest and the exact dependency lock.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks
type LockStore interface {
	// Load reads the exact dependency lock. A missing lock yields an empty one.
	Load(layout domain.Layout) (domain.Lockfile, error)

	// Write replaces the manifest and the lock as a single unit: either both
	// files are updated or neither is.
	Write(layout domain.Layout, manifest []byte, lock domain.Lockfile) error
}
