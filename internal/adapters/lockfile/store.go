// Package lockfile persists the manifest and the exact dependency lock as one unit.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	properfs "go.trai.ch/proper/internal/adapters/fs"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/zerr"
)

const lockIndent = "    "

// Store implements ports.LockStore.
type Store struct {
	rename func(src, dst string) error
}

// NewStore creates a new lock store.
func NewStore() *Store {
	return &Store{rename: properfs.RenameWithFallback}
}

// Load reads the exact dependency lock. A missing lock yields an empty one.
func (s *Store) Load(layout domain.Layout) (domain.Lockfile, error) {
	path := layout.LockPath()
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the layout
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewLockfile(), nil
	}
	if err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(domain.ErrLockRead, err.Error()), "path", path)
	}

	lock := domain.NewLockfile()
	if len(data) == 0 {
		return lock, nil
	}
	if err := json.Unmarshal(data, &lock.Versions); err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(domain.ErrLockRead, err.Error()), "path", path)
	}
	if lock.Versions == nil {
		lock.Versions = make(map[string]string)
	}
	return lock, nil
}

// Encode renders the lock as a JSON object with sorted keys.
func Encode(lock domain.Lockfile) ([]byte, error) {
	versions := lock.Versions
	if versions == nil {
		versions = map[string]string{}
	}
	data, err := json.MarshalIndent(versions, "", lockIndent)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrLockWrite, err.Error())
	}
	return append(data, '\n'), nil
}

// Write replaces the manifest and the lock. Both new files are staged in a
// temporary directory first, the originals are moved aside, and on any
// failure the originals are moved back.
func (s *Store) Write(layout domain.Layout, manifest []byte, lock domain.Lockfile) error {
	lockData, err := Encode(lock)
	if err != nil {
		return err
	}

	lockPath := layout.LockPath()
	workDir := filepath.Dir(lockPath)
	if err := os.MkdirAll(workDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockWrite, err.Error()), "path", workDir)
	}

	td, err := os.MkdirTemp(workDir, ".proper-txn-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockWrite, err.Error()), "path", workDir)
	}
	defer os.RemoveAll(td) //nolint:errcheck // Best effort cleanup of the transaction area

	files := []struct {
		name   string
		target string
		data   []byte
	}{
		{domain.ManifestFileName, layout.ManifestPath(), manifest},
		{domain.LockFileName, lockPath, lockData},
	}

	for _, f := range files {
		//nolint:gosec // Path is inside our own temp dir
		if err := os.WriteFile(filepath.Join(td, f.name), f.data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrLockWrite, "failed to stage file: "+err.Error()), "file", f.name)
		}
	}

	type pathpair struct {
		from, to string
	}
	var restore []pathpair
	var placed []string

	fail := func(cause error, target string) error {
		// Newly placed files go first, then the originals come back.
		for _, path := range placed {
			_ = os.Remove(path)
		}
		for _, pair := range restore {
			_ = s.rename(pair.from, pair.to)
		}
		return zerr.With(zerr.Wrap(domain.ErrLockWrite, cause.Error()), "path", target)
	}

	for _, f := range files {
		if _, err := os.Stat(f.target); err == nil {
			backup := filepath.Join(td, f.name+".orig")
			if err := s.rename(f.target, backup); err != nil {
				return fail(err, f.target)
			}
			restore = append(restore, pathpair{from: backup, to: f.target})
		}

		if err := s.rename(filepath.Join(td, f.name), f.target); err != nil {
			return fail(err, f.target)
		}
		placed = append(placed, f.target)
	}

	return nil
}
