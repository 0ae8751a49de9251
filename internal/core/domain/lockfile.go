package domain

import "maps"

// Lockfile is the exact dependency lock: package name to exact resolved version.
type Lockfile struct {
	Versions map[string]string
}

// NewLockfile creates an empty lock.
func NewLockfile() Lockfile {
	return Lockfile{Versions: make(map[string]string)}
}

// Merge returns a lock holding the prior entries that are still declared in
// the manifest, overridden by the given resolutions.
func (l Lockfile) Merge(manifest *Manifest, results []Resolution) Lockfile {
	merged := NewLockfile()
	for name, version := range l.Versions {
		if _, ok := manifest.Declaration(name); ok {
			merged.Versions[name] = version
		}
	}
	for _, r := range results {
		merged.Versions[r.Name] = r.Version
	}
	return merged
}

// Clone returns a deep copy of the lock.
func (l Lockfile) Clone() Lockfile {
	return Lockfile{Versions: maps.Clone(l.Versions)}
}
