package results

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"github.com/stretchr/testify/assert"
)

func TestPathIndex(t *testing.T) {
	p := filepath.FromSlash
	records := []types.FileRecord{
		{Path: p("/a/x/y.txt"), Name: "y.txt"},
		{Path: p("/ab/z.txt"), Name: "z.txt"},
		{Path: p("/a/top.txt"), Name: "top.txt"},
		{Path: p("/c/z.txt"), Name: "z.txt"},
	}
	idx := NewPathIndex(records)

	assert.Equal(t, 4, idx.Len())

	t.Run("under keeps input order and respects separators", func(t *testing.T) {
		assert.Equal(t, []string{p("/a/x/y.txt"), p("/a/top.txt")}, paths(idx.Under(p("/a"))))
		assert.Equal(t, []string{p("/a/x/y.txt"), p("/a/top.txt")}, paths(idx.Under(p("/a/"))))
		assert.Equal(t, []string{p("/ab/z.txt")}, paths(idx.Under(p("/ab"))))
		assert.Empty(t, idx.Under(p("/missing")))
	})

	t.Run("lookup", func(t *testing.T) {
		rec, ok := idx.Lookup(p("/c/z.txt"))
		assert.True(t, ok)
		assert.Equal(t, "z.txt", rec.Name)

		_, ok = idx.Lookup(p("/c"))
		assert.False(t, ok)
	})
}
