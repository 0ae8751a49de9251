package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedRange is returned when a range expression does not match `low <op> v <op> high`.
	ErrMalformedRange = zerr.New("malformed range expression")

	// ErrSourceUnavailable is returned when a dependency's remote cannot be cloned.
	ErrSourceUnavailable = zerr.New("source unavailable")

	// ErrSync is returned when the default branch cannot be checked out and fast-forwarded.
	ErrSync = zerr.New("failed to sync default branch")

	// ErrTagList is returned when the tags of a local clone cannot be listed.
	ErrTagList = zerr.New("failed to list tags")

	// ErrCheckout is returned when a tag cannot be checked out.
	ErrCheckout = zerr.New("failed to checkout tag")

	// ErrNoVersions is returned when an unconstrained dependency has no semantic version tags.
	ErrNoVersions = zerr.New("no semantic version tags available")

	// ErrMaterialize is returned when a resolved version cannot be copied into the package cache.
	ErrMaterialize = zerr.New("failed to materialize version")

	// ErrRegistryKeyMissing is returned when no tool version is available to key a registry entry.
	ErrRegistryKeyMissing = zerr.New("no tool version available for registry entry")

	// ErrNoManifest is returned when no dependency manifest exists in the working directory.
	ErrNoManifest = zerr.New("no elm-package.json found in the current directory")

	// ErrManifestParse is returned when the dependency manifest cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse dependency manifest")

	// ErrManifestEncode is returned when the dependency manifest cannot be encoded.
	ErrManifestEncode = zerr.New("failed to encode dependency manifest")

	// ErrLockRead is returned when the exact dependency lock cannot be read.
	ErrLockRead = zerr.New("failed to read exact dependency lock")

	// ErrLockWrite is returned when the manifest and lock cannot be written as one unit.
	ErrLockWrite = zerr.New("failed to write manifest and lock")

	// ErrSettingsRead is returned when the settings file cannot be read.
	ErrSettingsRead = zerr.New("failed to read settings file")

	// ErrSettingsParse is returned when the settings file cannot be parsed.
	ErrSettingsParse = zerr.New("failed to parse settings file")

	// ErrInvalidPackage is returned when a package identifier cannot be mapped to a name and URL.
	ErrInvalidPackage = zerr.New("invalid package identifier")

	// ErrInstallFailed is returned when at least one dependency did not reach Done.
	ErrInstallFailed = zerr.New("install failed")

	// ErrVerifyFailed is returned when a locked version has no intact materialized slot.
	ErrVerifyFailed = zerr.New("materialized version verification failed")
)
