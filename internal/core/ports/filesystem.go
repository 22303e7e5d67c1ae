package ports

// FileSystem abstracts the file operations performed by the build targets.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Glob returns the files under root matching any of the patterns, sorted.
	// Patterns are relative to root and may contain "**".
	Glob(root string, patterns []string) ([]string, error)
	// Exists reports whether path exists.
	Exists(path string) bool
	// Remove deletes path recursively. A missing path is not an error.
	Remove(path string) error
	// Entries lists the names of the entries of dir. A missing dir yields no entries.
	Entries(dir string) ([]string, error)
	// CopyIfNewer copies src to dst when dst is missing or older than src.
	// It reports whether a copy happened.
	CopyIfNewer(src, dst string) (bool, error)
	// CopyTree copies the content of src into dst.
	CopyTree(src, dst string) error
	// WriteIfChanged writes data to path unless the file already holds the same content.
	// It reports whether the file was written.
	WriteIfChanged(path string, data []byte) (bool, error)
}
