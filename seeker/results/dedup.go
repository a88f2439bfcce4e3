package results

import (
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
)

// Dedup collapses records with identical content digests. The result is
// ordered by digest and keeps the first record of each run of equal digests.
//
// When the collection is empty or its first record carries no digest, hashing
// was off for the run and records is returned unchanged.
func Dedup(records []types.FileRecord) []types.FileRecord {
	if len(records) == 0 || records[0].Hash == "" {
		return records
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b types.FileRecord) int {
		return strings.Compare(a.Hash, b.Hash)
	})

	return slices.CompactFunc(sorted, func(a, b types.FileRecord) bool {
		return a.Hash == b.Hash
	})
}

// DuplicateGroups returns every set of two or more records sharing a digest,
// in digest order. Records without a digest are ignored.
func DuplicateGroups(records []types.FileRecord) [][]types.FileRecord {
	byHash := make(map[string][]types.FileRecord)
	for _, r := range records {
		if r.Hash != "" {
			byHash[r.Hash] = append(byHash[r.Hash], r)
		}
	}

	hashes := make([]string, 0, len(byHash))
	for h, group := range byHash {
		if len(group) > 1 {
			hashes = append(hashes, h)
		}
	}
	slices.Sort(hashes)

	groups := make([][]types.FileRecord, 0, len(hashes))
	for _, h := range hashes {
		groups = append(groups, byHash[h])
	}
	return groups
}
