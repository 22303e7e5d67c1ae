package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct {
	walker *Walker
}

// New creates a new FileSystem.
func New(walker *Walker) *FileSystem {
	return &FileSystem{walker: walker}
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes path recursively. A missing path is not an error.
func (f *FileSystem) Remove(path string) error {
	if err := sh.Rm(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", path)
	}
	return nil
}

// Entries lists the entry names of dir, sorted. A missing dir yields no entries.
func (f *FileSystem) Entries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", dir)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	slices.Sort(names)
	return names, nil
}

// CopyIfNewer copies src to dst when dst is missing or older than src.
func (f *FileSystem) CopyIfNewer(src, dst string) (bool, error) {
	stale, err := target.Path(dst, src)
	if err != nil {
		return false, zerr.With(zerr.With(zerr.Wrap(err, "failed to compare modification times"), "src", src), "dst", dst)
	}
	if !stale {
		return false, nil
	}
	if err := copyFile(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// CopyTree copies every file below src into dst, keeping the relative layout.
func (f *FileSystem) CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "path", src)
	}

	for file := range f.walker.WalkFiles(src) {
		rel, err := filepath.Rel(src, file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", file)
		}
		if err := copyFile(file, filepath.Join(dst, rel)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dst))
	}
	if err := sh.Copy(dst, src); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy file"), "src", src), "dst", dst)
	}
	return nil
}

// WriteIfChanged writes data to path unless the file already holds the same content.
func (f *FileSystem) WriteIfChanged(path string, data []byte) (bool, error) {
	if current, err := fileHash(path); err == nil && current == xxhash.Sum64(data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return true, nil
}

// fileHash computes the XXHash of a file's content.
func fileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
