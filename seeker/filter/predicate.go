package filter

import (
	"os"
	"time"
)

// Metadata is the slice of a file's attributes the predicate needs.
type Metadata struct {
	Name     string
	Size     uint64
	ModTime  time.Time
	Hidden   bool
	ReadOnly bool
	System   bool
}

// MetadataOf extracts Metadata from info, reading platform attributes.
func MetadataOf(info os.FileInfo) Metadata {
	attrs := attributesOf(info)
	size := info.Size()
	if size < 0 {
		size = 0
	}
	return Metadata{
		Name:     info.Name(),
		Size:     uint64(size),
		ModTime:  info.ModTime(),
		Hidden:   attrs.hidden,
		ReadOnly: attrs.readOnly,
		System:   attrs.system,
	}
}

// IsHidden reports whether info describes a hidden file or directory.
func IsHidden(info os.FileInfo) bool {
	return attributesOf(info).hidden
}

// Matches evaluates meta against c. It has no side effects and never fails:
// a file that does not qualify simply yields false.
func Matches(meta Metadata, c *Criteria) bool {
	if !c.includeHiddenFiles && meta.Hidden {
		return false
	}
	if meta.Size > c.maxSize || meta.Size < c.minSize {
		return false
	}
	if !c.includeReadOnly && meta.ReadOnly {
		return false
	}
	if !c.includeSystem && meta.System {
		return false
	}
	return matchesTime(meta.ModTime, c.timeLimit)
}

func matchesTime(modTime time.Time, limit TimeLimit) bool {
	switch limit.Kind {
	case TimeLimitRelative:
		isNewer := modTime.After(limit.Cutoff)
		return isNewer == (limit.Polarity == PolarityNewer)
	case TimeLimitAbsolute:
		ts := modTime.Unix()
		return ts >= limit.Min && ts < limit.MaxExclusive
	default:
		return true
	}
}
