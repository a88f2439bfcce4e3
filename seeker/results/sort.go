// Package results post-processes the record collection a search produced:
// ordering, content dedup, selection, summaries and import/export.
package results

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
)

// ParseSortField maps user input to a SortField.
func ParseSortField(s string) (options.SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return options.SortByName, nil
	case "size":
		return options.SortBySize, nil
	case "time", "modtime", "mtime":
		return options.SortByModTime, nil
	case "path", "":
		return options.SortByPath, nil
	default:
		return "", common.NewConfigError("sort", fmt.Errorf("%w: %q", common.ErrUnknownSortField, s))
	}
}

// Sort returns a stably sorted copy of records. Descending order inverts the
// comparison rather than reversing the output, so records with equal keys
// keep their input order in both directions.
func Sort(records []types.FileRecord, criteria options.SortCriteria) []types.FileRecord {
	sorted := slices.Clone(records)

	compare := comparator(criteria.Field)
	if criteria.Direction == options.SortDesc {
		asc := compare
		compare = func(a, b types.FileRecord) int { return asc(b, a) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(field options.SortField) func(a, b types.FileRecord) int {
	switch field {
	case options.SortByName:
		return func(a, b types.FileRecord) int { return strings.Compare(a.Name, b.Name) }
	case options.SortBySize:
		return func(a, b types.FileRecord) int { return cmp.Compare(a.Size, b.Size) }
	case options.SortByModTime:
		return func(a, b types.FileRecord) int { return cmp.Compare(a.Time, b.Time) }
	default:
		return func(a, b types.FileRecord) int { return strings.Compare(a.Path, b.Path) }
	}
}
