// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/proper/internal/core/domain"

// ManifestStore reads and encodes dependency manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest at path.
	// Returns an error wrapping domain.ErrNoManifest if the file does not exist.
	Load(path string) (*domain.Manifest, error)

	// Encode renders the manifest with its current dependency ranges, keeping
	// every other field of the original document.
	Encode(m *domain.Manifest) ([]byte, error)
}

// SettingsLoader loads the optional tool settings of a project.
type SettingsLoader interface {
	// Load reads the settings file from root, falling back to defaults for
	// every field it does not set. A missing file is not an error.
	Load(root string) (domain.Settings, error)
}
