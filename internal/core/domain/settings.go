package domain

import (
	"path/filepath"
	"time"
)

// DefaultGitTimeout bounds how long a git command may run without producing output.
const DefaultGitTimeout = 2 * time.Minute

// Settings are the per-project tool settings.
type Settings struct {
	// GitHost is prepended to owner/repo shorthand.
	GitHost string
	// WorkDir is the project-local work directory.
	WorkDir string
	// RegistryRoot is the user-scoped registry directory.
	RegistryRoot string
	// DefaultBranch is used when the remote does not advertise one.
	DefaultBranch string
	// Concurrency caps the number of dependencies installed at once. Zero means unbounded.
	Concurrency int
	// GitTimeout is the inactivity timeout of a single git command.
	GitTimeout time.Duration
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings(home string) Settings {
	return Settings{
		GitHost:       DefaultGitHost,
		WorkDir:       DefaultWorkDir,
		RegistryRoot:  filepath.Join(home, RegistryDirName),
		DefaultBranch: DefaultBranch,
		GitTimeout:    DefaultGitTimeout,
	}
}

// Layout resolves the on-disk locations for a project rooted at root.
func (s Settings) Layout(root string) Layout {
	return Layout{Root: root, WorkDir: s.WorkDir, RegistryRoot: s.RegistryRoot}
}

// CloneOptions configure a repository handle.
type CloneOptions struct {
	// Path is the local clone directory.
	Path string
	// DefaultBranch is checked out when the remote's HEAD cannot be resolved.
	DefaultBranch string
	// Timeout is the inactivity timeout of a single git command.
	Timeout time.Duration
}
