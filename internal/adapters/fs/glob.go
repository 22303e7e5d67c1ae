package fs

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const doubleStar = "**"

// Glob returns the files below root matching any of the patterns, sorted and
// without duplicates. Patterns use forward slashes; "**" matches any number of
// directories.
func (f *FileSystem) Glob(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		segments := strings.Split(pattern, "/")
		if err := validatePattern(segments); err != nil {
			return nil, zerr.With(err, "pattern", pattern)
		}

		base := staticPrefix(segments)
		for file := range f.walker.WalkFiles(filepath.Join(root, filepath.FromSlash(base))) {
			rel, err := filepath.Rel(root, file)
			if err != nil {
				continue
			}
			if matchSegments(segments, strings.Split(filepath.ToSlash(rel), "/")) {
				seen[file] = struct{}{}
			}
		}
	}

	matches := make([]string, 0, len(seen))
	for file := range seen {
		matches = append(matches, file)
	}
	slices.Sort(matches)
	return matches, nil
}

func validatePattern(segments []string) error {
	for _, seg := range segments {
		if seg == doubleStar {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return zerr.Wrap(err, "invalid glob pattern")
		}
	}
	return nil
}

// staticPrefix returns the leading directories of a pattern that contain no wildcards.
func staticPrefix(segments []string) string {
	var prefix []string
	for _, seg := range segments[:len(segments)-1] {
		if seg == doubleStar || strings.ContainsAny(seg, `*?[\`) {
			break
		}
		prefix = append(prefix, seg)
	}
	return path.Join(prefix...)
}

// matchSegments matches a split path against a split pattern.
func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == doubleStar {
			if len(pattern) == 1 {
				return true
			}
			for i := range len(name) + 1 {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
