package common

import (
	"path/filepath"
	"strings"
)

// PathUtils provides path manipulation utilities used across filesystem packages
type PathUtils struct{}

// NewPathUtils creates a new PathUtils instance
func NewPathUtils() *PathUtils {
	return &PathUtils{}
}

// RelativeInside returns target relative to base when target lies strictly
// below base. Both paths are expected to be absolute; no normalisation against
// the working directory is attempted.
func (pu *PathUtils) RelativeInside(base, target string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// Segments splits an absolute path into its non-empty components. A Windows
// volume name becomes the first segment.
func (pu *PathUtils) Segments(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// WithTrailingSeparator returns dir ending in exactly one path separator.
func (pu *PathUtils) WithTrailingSeparator(dir string) string {
	dir = filepath.Clean(dir)
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}
