// Package fs provides file system helpers for walking, hashing and copying package trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// vcsDirs are never part of a package tree.
var vcsDirs = []string{".git", ".jj", ".hg", ".svn"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every non-directory entry under root in lexical order,
// skipping version control directories and entries whose name matches one of
// the ignore patterns. Paths include root. Walk errors are yielded and end the walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && skip(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// skip reports whether an entry is excluded from a package tree.
func skip(name string, ignores []string) bool {
	for _, dir := range vcsDirs {
		if name == dir {
			return true
		}
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
