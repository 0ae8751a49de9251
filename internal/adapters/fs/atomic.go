package fs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/zerr"
)

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers observe either the old content or the new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", dir)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write temp file"), "path", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to sync temp file"), "path", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temp file"), "path", tmpPath)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rename temp file"), "path", path)
	}
	return nil
}

// RenameWithFallback renames src to dst, falling back to copy and remove when
// the two paths are on different devices.
func RenameWithFallback(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	info, statErr := os.Lstat(src)
	if statErr != nil {
		return zerr.With(zerr.Wrap(statErr, "cannot stat rename source"), "path", src)
	}
	if info.IsDir() {
		err = CopyDir(src, dst, nil)
	} else {
		err = copyFile(src, dst)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "rename fallback failed"), "path", dst)
	}
	if err := os.RemoveAll(src); err != nil {
		return zerr.With(zerr.Wrap(err, "cannot remove rename source"), "path", src)
	}
	return nil
}
