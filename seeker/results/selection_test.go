package results

import (
	"testing"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("0, 2,5-7")
	require.NoError(t, err)

	assert.Equal(t, 5, sel.Len())
	for _, i := range []int{0, 2, 5, 6, 7} {
		assert.True(t, sel.Contains(i), i)
	}
	for _, i := range []int{-1, 1, 3, 4, 8} {
		assert.False(t, sel.Contains(i), i)
	}

	for _, bad := range []string{"", "  ,", "a", "3-1", "1-", "-2", "1-x"} {
		_, err := ParseSelection(bad)
		assert.ErrorIs(t, err, common.ErrInvalidSelection, bad)
		assert.True(t, common.IsConfigError(err), bad)
	}
}

func TestSelection_Apply(t *testing.T) {
	records := sampleRecords()

	sel := NewSelection(3, 0, 99)
	assert.Equal(t, []string{"/data/b/report.txt", "/data/a/photo.jpg"}, paths(sel.Apply(records)))

	assert.Equal(t, paths(records), paths(SelectAll(len(records)).Apply(records)))
	assert.Empty(t, SelectAll(0).Apply(records))
}

func TestSelection_Invert(t *testing.T) {
	sel := NewSelection(0, 2, 10)

	inv := sel.Invert(4)
	assert.Equal(t, 2, inv.Len())
	assert.True(t, inv.Contains(1))
	assert.True(t, inv.Contains(3))
	assert.False(t, inv.Contains(10))

	assert.Equal(t, 0, sel.Invert(0).Len())
	assert.Equal(t, 3, sel.Len(), "invert must not modify the receiver")
}

func TestSelection_IntersectWithInverse(t *testing.T) {
	keep := SelectAll(6).Intersect(NewSelection(1, 4).Invert(6))

	assert.Equal(t, 4, keep.Len())
	for _, i := range []int{0, 2, 3, 5} {
		assert.True(t, keep.Contains(i), i)
	}
	assert.False(t, keep.Contains(1))
	assert.False(t, keep.Contains(4))
}
