// Package fs provides the file system adapter used by the build targets.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
)

// skippedDirs are never descended into while matching files.
var skippedDirs = map[string]bool{
	".git": true,
	".vs":  true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, skipping version-control and IDE
// directories. A missing root yields nothing.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				//nolint:nilerr // unreadable entries are skipped
				return nil
			}
			if d.IsDir() {
				if path != root && skippedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
