package domain

import (
	"path/filepath"
)

const (
	// ManifestFileName is the name of the dependency manifest, both for the project and its dependencies.
	ManifestFileName = "elm-package.json"

	// SettingsFileName is the name of the optional tool settings file.
	SettingsFileName = ".proper.yaml"

	// DefaultWorkDir is the project-local directory holding clones, materialized versions and the lock.
	DefaultWorkDir = "elm-stuff"

	// PackagesDirName is the directory under the work dir holding one directory per package.
	PackagesDirName = "packages"

	// CloneDirName is the directory name of the durable local clone inside a package directory.
	CloneDirName = ".cloned"

	// LockFileName is the name of the exact dependency lock inside the work dir.
	LockFileName = "exact-dependencies.json"

	// RegistryDirName is the user-scoped registry directory under the home directory.
	RegistryDirName = ".elm"

	// RegistryPackageDirName separates the tool version from package names in the registry.
	RegistryPackageDirName = "package"

	// StampFileName marks a materialized version slot as complete.
	StampFileName = ".proper-stamp.json"

	// DefaultGitHost is prepended to owner/repo shorthand.
	DefaultGitHost = "https://github.com/"

	// DefaultBranch is used when the remote does not advertise a default branch.
	DefaultBranch = "master"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout resolves every on-disk location used by an install.
type Layout struct {
	// Root is the project directory containing the manifest.
	Root string
	// WorkDir is the project-local work directory, relative to Root unless absolute.
	WorkDir string
	// RegistryRoot is the user-scoped registry directory.
	RegistryRoot string
}

func (l Layout) workDir() string {
	if filepath.IsAbs(l.WorkDir) {
		return l.WorkDir
	}
	return filepath.Join(l.Root, l.WorkDir)
}

// ManifestPath returns the path of the project manifest.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.Root, ManifestFileName)
}

// LockPath returns the path of the exact dependency lock.
func (l Layout) LockPath() string {
	return filepath.Join(l.workDir(), LockFileName)
}

// PackageDir returns the directory holding the clone and all versions of a package.
func (l Layout) PackageDir(name string) string {
	return filepath.Join(l.workDir(), PackagesDirName, filepath.FromSlash(name))
}

// ClonePath returns the durable local clone of a package.
func (l Layout) ClonePath(name string) string {
	return filepath.Join(l.PackageDir(name), CloneDirName)
}

// VersionPath returns the materialized slot for one exact version of a package.
func (l Layout) VersionPath(name, version string) string {
	return filepath.Join(l.PackageDir(name), version)
}

// RegistryEntryPath returns the registry copy of a dependency's manifest.
func (l Layout) RegistryEntryPath(toolVersion, name, version string) string {
	return filepath.Join(
		l.RegistryRoot,
		toolVersion,
		RegistryPackageDirName,
		filepath.FromSlash(name),
		version,
		ManifestFileName,
	)
}
