package results

import (
	"path/filepath"
	"slices"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"github.com/armon/go-radix"
)

// PathIndex answers exact and subtree lookups over a record collection in
// O(k) of the path length, using a patricia tree keyed by cleaned path.
type PathIndex struct {
	tree      *radix.Tree
	pathUtils *common.PathUtils
}

type indexedRecord struct {
	pos    int
	record types.FileRecord
}

// NewPathIndex indexes records. When two records share a path the later one wins.
func NewPathIndex(records []types.FileRecord) *PathIndex {
	idx := &PathIndex{
		tree:      radix.New(),
		pathUtils: common.NewPathUtils(),
	}
	for i, r := range records {
		idx.tree.Insert(filepath.Clean(r.Path), indexedRecord{pos: i, record: r})
	}
	return idx
}

// Len returns the number of distinct paths indexed.
func (idx *PathIndex) Len() int {
	return idx.tree.Len()
}

// Lookup finds the record stored under path.
func (idx *PathIndex) Lookup(path string) (types.FileRecord, bool) {
	v, ok := idx.tree.Get(filepath.Clean(path))
	if !ok {
		return types.FileRecord{}, false
	}
	return v.(indexedRecord).record, true
}

// Under returns the records strictly below dir, in input order.
// "/a" does not match "/ab/x"; the prefix always ends at a separator.
func (idx *PathIndex) Under(dir string) []types.FileRecord {
	var found []indexedRecord
	idx.tree.WalkPrefix(idx.pathUtils.WithTrailingSeparator(dir), func(_ string, v interface{}) bool {
		found = append(found, v.(indexedRecord))
		return false
	})

	slices.SortFunc(found, func(a, b indexedRecord) int { return a.pos - b.pos })

	out := make([]types.FileRecord, len(found))
	for i, f := range found {
		out[i] = f.record
	}
	return out
}
