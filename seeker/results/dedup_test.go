package results

import (
	"testing"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"github.com/stretchr/testify/assert"
)

func TestDedup(t *testing.T) {
	t.Run("keeps first record per digest", func(t *testing.T) {
		got := Dedup(sampleRecords())
		assert.Equal(t, []string{"/data/a/notes.txt", "/data/a/photo.jpg", "/data/b/report.txt"}, paths(got))
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := Dedup(sampleRecords())
		assert.Equal(t, once, Dedup(once))
	})

	t.Run("no-op without digests", func(t *testing.T) {
		records := []types.FileRecord{
			{Path: "/b", Name: "b"},
			{Path: "/a", Name: "a"},
		}
		assert.Equal(t, records, Dedup(records))
	})

	t.Run("no-op on empty input", func(t *testing.T) {
		assert.Empty(t, Dedup(nil))
	})

	t.Run("input is not modified", func(t *testing.T) {
		records := sampleRecords()
		Dedup(records)
		assert.Equal(t, sampleRecords(), records)
	})
}

func TestDuplicateGroups(t *testing.T) {
	groups := DuplicateGroups(sampleRecords())
	if assert.Len(t, groups, 1) {
		assert.Equal(t, []string{"/data/a/notes.txt", "/data/c/notes.txt"}, paths(groups[0]))
	}

	assert.Empty(t, DuplicateGroups([]types.FileRecord{{Path: "/x"}, {Path: "/y"}}))
}
