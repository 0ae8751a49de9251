// Package cas implements the immutable, version-keyed package cache.
package cas

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	properfs "go.trai.ch/proper/internal/adapters/fs"
	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/proper/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// treeIgnores keeps the stamp out of the digest it records.
var treeIgnores = []string{domain.StampFileName}

// Materializer implements ports.Materializer on the local file system.
//
// A slot only ever appears through a rename of a fully written staging
// directory, so an existing slot is complete.
type Materializer struct {
	manifests ports.ManifestStore
	hasher    *properfs.Hasher
	logger    ports.Logger
	group     singleflight.Group
	now       func() time.Time
}

// NewMaterializer creates a new Materializer.
func NewMaterializer(manifests ports.ManifestStore, hasher *properfs.Hasher, logger ports.Logger) *Materializer {
	return &Materializer{
		manifests: manifests,
		hasher:    hasher,
		logger:    logger,
		now:       time.Now,
	}
}

// Materialize copies req.WorkingTree into the slot for (req.Name, req.Version)
// and registers the dependency's manifest. Concurrent calls for the same slot
// share one execution.
func (m *Materializer) Materialize(
	ctx context.Context,
	layout domain.Layout,
	req domain.MaterializeRequest,
) (domain.MaterializedVersion, error) {
	slot := layout.VersionPath(req.Name, req.Version)
	v, err, _ := m.group.Do(slot, func() (any, error) {
		return m.materialize(ctx, layout, req, slot)
	})
	if err != nil {
		return domain.MaterializedVersion{}, err
	}
	return v.(domain.MaterializedVersion), nil
}

func (m *Materializer) materialize(
	ctx context.Context,
	layout domain.Layout,
	req domain.MaterializeRequest,
	slot string,
) (domain.MaterializedVersion, error) {
	result := domain.MaterializedVersion{Name: req.Name, Version: req.Version, Path: slot}

	if exists, err := isDir(slot); err != nil {
		return result, materializeErr(req, "failed to inspect version slot", err)
	} else if exists {
		m.logger.Debug("reusing " + req.Name + "@" + req.Version)
		return m.reused(result), nil
	}

	if err := ctx.Err(); err != nil {
		return result, materializeErr(req, "cancelled", err)
	}

	manifest, err := m.manifests.Load(filepath.Join(req.WorkingTree, domain.ManifestFileName))
	if err != nil {
		return result, materializeErr(req, "failed to read dependency manifest", err)
	}
	key, ok := domain.RegistryKey(manifest.ToolVersion)
	if !ok {
		key, ok = domain.RegistryKey(req.FallbackToolVersion)
	}
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrRegistryKeyMissing, "neither the dependency nor the project declares elm-version"), "package", req.Name)
		return result, zerr.With(err, "version", req.Version)
	}

	pkgDir := filepath.Dir(slot)
	if err := os.MkdirAll(pkgDir, domain.DirPerm); err != nil {
		return result, materializeErr(req, "failed to create package directory", err)
	}
	tmpParent, err := os.MkdirTemp(pkgDir, "."+req.Version+".tmp-*")
	if err != nil {
		return result, materializeErr(req, "failed to create staging directory", err)
	}
	defer os.RemoveAll(tmpParent) //nolint:errcheck // Best effort cleanup of the staging area
	staging := filepath.Join(tmpParent, req.Version)

	if err := properfs.CopyDir(req.WorkingTree, staging, treeIgnores); err != nil {
		return result, materializeErr(req, "failed to copy working tree", err)
	}
	digest, err := m.hasher.ComputeTreeHash(staging, treeIgnores)
	if err != nil {
		return result, materializeErr(req, "failed to digest working tree", err)
	}
	result.Digest = digest

	entry := layout.RegistryEntryPath(key, req.Name, req.Version)

	stamp := domain.Stamp{
		Package:       req.Name,
		Version:       req.Version,
		Digest:        digest,
		RegistryEntry: entry,
		Timestamp:     m.now().UTC(),
	}
	if err := writeStamp(staging, stamp); err != nil {
		return result, materializeErr(req, "failed to write stamp", err)
	}

	if err := os.Rename(staging, slot); err != nil {
		// Another process won the race; its slot is equally complete.
		if exists, _ := isDir(slot); exists {
			return m.reused(result), nil
		}
		return result, materializeErr(req, "failed to move version into place", err)
	}

	// The registry only ever names versions whose slot is in place.
	if err := properfs.WriteFileAtomic(entry, manifest.Raw, domain.FilePerm); err != nil {
		_ = os.RemoveAll(slot)
		return result, materializeErr(req, "failed to write registry entry", err)
	}
	result.RegistryEntry = entry

	m.logger.Debug("materialized " + req.Name + "@" + req.Version + " at " + slot)
	return result, nil
}

// reused fills in what the existing slot's stamp records.
func (m *Materializer) reused(result domain.MaterializedVersion) domain.MaterializedVersion {
	result.Reused = true
	if stamp, err := readStamp(result.Path); err == nil {
		result.Digest = stamp.Digest
		result.RegistryEntry = stamp.RegistryEntry
	}
	return result
}

// Verify checks every locked version against the digest recorded in its slot.
func (m *Materializer) Verify(ctx context.Context, layout domain.Layout, lock domain.Lockfile) error {
	names := make([]string, 0, len(lock.Versions))
	for name := range lock.Versions {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		version := lock.Versions[name]
		if err := m.verifySlot(layout.VersionPath(name, version)); err != nil {
			err = zerr.With(err, "package", name)
			errs = append(errs, zerr.With(err, "version", version))
		}
	}
	return errors.Join(errs...)
}

func (m *Materializer) verifySlot(slot string) error {
	stamp, err := readStamp(slot)
	if errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrVerifyFailed, "version is not materialized"), "path", slot)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrVerifyFailed, "unreadable stamp: "+err.Error()), "path", slot)
	}

	digest, err := m.hasher.ComputeTreeHash(slot, treeIgnores)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrVerifyFailed, err.Error()), "path", slot)
	}
	if digest != stamp.Digest {
		err := zerr.With(zerr.Wrap(domain.ErrVerifyFailed, "content does not match stamp"), "path", slot)
		return zerr.With(zerr.With(err, "expected", stamp.Digest), "actual", digest)
	}
	return nil
}

func materializeErr(req domain.MaterializeRequest, reason string, err error) error {
	wrapped := zerr.Wrap(domain.ErrMaterialize, reason+": "+err.Error())
	return zerr.With(zerr.With(wrapped, "package", req.Name), "version", req.Version)
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func readStamp(slot string) (domain.Stamp, error) {
	var stamp domain.Stamp
	data, err := os.ReadFile(filepath.Join(slot, domain.StampFileName)) //nolint:gosec // Path is derived from the layout
	if err != nil {
		return stamp, err
	}
	if err := json.Unmarshal(data, &stamp); err != nil {
		return stamp, zerr.Wrap(err, "failed to unmarshal stamp")
	}
	return stamp, nil
}

func writeStamp(dir string, stamp domain.Stamp) error {
	data, err := json.MarshalIndent(stamp, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal stamp")
	}
	//nolint:gosec // Path is derived from the layout
	if err := os.WriteFile(filepath.Join(dir, domain.StampFileName), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write stamp")
	}
	return nil
}
