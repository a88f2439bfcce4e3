package filter

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, b *Builder) *Criteria {
	t.Helper()
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestMatches_IsPure(t *testing.T) {
	c := mustBuild(t, NewBuilder().SizeRange(10, 100).IncludeHiddenFiles(false))
	meta := Metadata{Name: "a.txt", Size: 50, ModTime: fixedNow}

	first := Matches(meta, c)
	for range 10 {
		assert.Equal(t, first, Matches(meta, c))
	}
}

func TestMatches_RelativePolarity(t *testing.T) {
	week := 7 * 24 * time.Hour
	dayOld := Metadata{Name: "recent", ModTime: fixedNow.Add(-24 * time.Hour)}
	monthOld := Metadata{Name: "stale", ModTime: fixedNow.Add(-30 * 24 * time.Hour)}

	newer := mustBuild(t, NewBuilder().WithClock(fixedClock).RelativeTime(week, PolarityNewer))
	assert.True(t, Matches(dayOld, newer))
	assert.False(t, Matches(monthOld, newer))

	older := mustBuild(t, NewBuilder().WithClock(fixedClock).RelativeTime(week, PolarityOlder))
	assert.False(t, Matches(dayOld, older))
	assert.True(t, Matches(monthOld, older))
}

func TestMatches_AbsoluteBoundsInclusive(t *testing.T) {
	c := mustBuild(t, NewBuilder().AbsoluteTimestamps(1_000, 2_000))

	at := func(ts int64) Metadata { return Metadata{Name: "f", ModTime: time.Unix(ts, 0)} }

	assert.True(t, Matches(at(1_000), c), "minimum boundary")
	assert.False(t, Matches(at(999), c), "one second before minimum")
	assert.True(t, Matches(at(2_000), c), "maximum boundary")
	assert.False(t, Matches(at(2_001), c), "one second after maximum")
}

func TestMatches_AbsoluteDatesIncludeWholeLastDay(t *testing.T) {
	c := mustBuild(t, NewBuilder().AbsoluteDates(2024, 1, 1, 2024, 1, 31))

	lastSecond := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	assert.True(t, Matches(Metadata{ModTime: lastSecond}, c))
	assert.False(t, Matches(Metadata{ModTime: lastSecond.Add(time.Second)}, c))
	assert.False(t, Matches(Metadata{ModTime: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)}, c))
}

func TestMatches_SizeBoundsInclusive(t *testing.T) {
	c := mustBuild(t, NewBuilder().SizeRange(10, 20))

	assert.False(t, Matches(Metadata{Size: 9}, c))
	assert.True(t, Matches(Metadata{Size: 10}, c))
	assert.True(t, Matches(Metadata{Size: 20}, c))
	assert.False(t, Matches(Metadata{Size: 21}, c))
}

func TestMatches_Attributes(t *testing.T) {
	strict := mustBuild(t, NewBuilder().
		IncludeHiddenFiles(false).
		IncludeReadOnly(false).
		IncludeSystem(false))

	assert.True(t, Matches(Metadata{Name: "plain"}, strict))
	assert.False(t, Matches(Metadata{Name: ".hidden", Hidden: true}, strict))
	assert.False(t, Matches(Metadata{Name: "locked", ReadOnly: true}, strict))
	assert.False(t, Matches(Metadata{Name: "sys", System: true}, strict))

	lenient := mustBuild(t, NewBuilder())
	assert.True(t, Matches(Metadata{Name: ".hidden", Hidden: true, ReadOnly: true, System: true}, lenient))
}

func TestMetadataOf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("attribute bits differ on windows")
	}

	dir := t.TempDir()
	hidden := filepath.Join(dir, ".secret")
	readOnly := filepath.Join(dir, "locked.txt")
	require.NoError(t, os.WriteFile(hidden, []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(readOnly, []byte("abcdef"), 0o444))

	info, err := os.Stat(hidden)
	require.NoError(t, err)
	meta := MetadataOf(info)
	assert.Equal(t, ".secret", meta.Name)
	assert.Equal(t, uint64(3), meta.Size)
	assert.True(t, meta.Hidden)
	assert.False(t, meta.ReadOnly)
	assert.False(t, meta.System)
	assert.True(t, IsHidden(info))

	info, err = os.Stat(readOnly)
	require.NoError(t, err)
	meta = MetadataOf(info)
	assert.False(t, meta.Hidden)
	assert.True(t, meta.ReadOnly)
}
