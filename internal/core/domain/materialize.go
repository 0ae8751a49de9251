package domain

import (
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// MaterializeRequest describes a checked-out working tree to copy into the
// package cache and register.
type MaterializeRequest struct {
	Name    string
	Version string

	// WorkingTree is the clone, already checked out at Version.
	WorkingTree string

	// FallbackToolVersion is the root project's tool version constraint, used
	// when the dependency's own manifest does not declare one.
	FallbackToolVersion string
}

// MaterializedVersion is the outcome of a materialization.
type MaterializedVersion struct {
	Name    string
	Version string

	// Path is the version slot directory.
	Path string

	// RegistryEntry is the path of the manifest copy in the tool registry.
	RegistryEntry string

	// Digest is the content digest of the slot, excluding version control metadata.
	Digest string

	// Reused is true when the slot already existed.
	Reused bool
}

// Stamp records how a version slot was produced. It is written into the slot
// and checked by verification.
type Stamp struct {
	Package       string    `json:"package"`
	Version       string    `json:"version"`
	Digest        string    `json:"digest"`
	RegistryEntry string    `json:"registry_entry,omitzero"`
	Timestamp     time.Time `json:"timestamp,omitzero"`
}

// RegistryKey derives the registry directory from a tool version constraint:
// the first token truncated to major.minor.0. "0.18.0 <= v < 0.19.0" yields "0.18.0".
func RegistryKey(constraint string) (string, bool) {
	fields := strings.Fields(constraint)
	if len(fields) == 0 {
		return "", false
	}
	v, err := semver.NewVersion(fields[0])
	if err != nil {
		return "", false
	}
	return semver.New(v.Major(), v.Minor(), 0, "", "").String(), true
}
