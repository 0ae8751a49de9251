package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

var (
	errSrcNotDir = zerr.New("source is not a directory")
	errDstExist  = zerr.New("destination already exists")
)

// CopyDir recursively copies a package tree, preserving file modes and
// recreating symlinks. Version control directories and entries matching an
// ignore pattern are left out. src must be a directory and dst must not exist.
func CopyDir(src, dst string, ignores []string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	// Lstat so a symlinked root is not followed into a loop.
	fi, err := os.Lstat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}
	if !fi.IsDir() {
		return zerr.With(errSrcNotDir, "path", src)
	}

	if _, err := os.Lstat(dst); err == nil {
		return zerr.With(errDstExist, "path", dst)
	} else if !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to stat destination"), "path", dst)
	}

	if err := os.MkdirAll(dst, fi.Mode().Perm()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read directory"), "path", src)
	}

	for _, entry := range entries {
		if skip(entry.Name(), ignores) {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			err = copySymlink(srcPath, dstPath)
		case entry.IsDir():
			err = CopyDir(srcPath, dstPath, ignores)
		case entry.Type().IsRegular():
			err = copyFile(srcPath, dstPath)
		default:
			// Devices, sockets and pipes are not part of a package.
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to close file"), "path", dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	if err := out.Sync(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to sync file"), "path", dst)
	}
	return nil
}

// copySymlink recreates src's link at dst. Relative links stay relative.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve symlink"), "path", src)
	}
	if err := os.Symlink(target, dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create symlink"), "path", dst)
	}
	return nil
}
