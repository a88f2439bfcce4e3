package trees

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFor(paths ...string) []types.FileRecord {
	out := make([]types.FileRecord, len(paths))
	for i, p := range paths {
		p = filepath.FromSlash(p)
		out[i] = types.FileRecord{Path: p, Name: filepath.Base(p)}
	}
	return out
}

func TestBuild_TwoFolders(t *testing.T) {
	tree := Build(recordsFor("/a/1.txt", "/a/2.txt", "/b/3.txt"))

	root := tree.Root()
	assert.Equal(t, NoParent, root.Parent)
	require.Len(t, root.Children, 2)

	a := tree.Node(root.Children[0])
	b := tree.Node(root.Children[1])
	assert.Equal(t, "a", a.Name)
	assert.Len(t, a.Children, 2)
	assert.Equal(t, "b", b.Name)
	assert.Len(t, b.Children, 1)
	assert.Equal(t, 0, a.Parent)

	assert.Equal(t, 6, tree.Len())

	want := "a (2 children)\n" +
		" ├── 1.txt\n" +
		" └── 2.txt\n" +
		"b (1 child)\n" +
		" └── 3.txt\n"
	assert.Equal(t, want, tree.String())
}

func TestBuild_DeepBranches(t *testing.T) {
	tree := Build(recordsFor(
		"/home/u/docs/a.txt",
		"/home/u/docs/b.txt",
		"/home/u/music/c.mp3",
		"/home/v/d.txt",
	))

	want := "home (2 children)\n" +
		" ├── u (2 children)\n" +
		" │    ├── docs (2 children)\n" +
		" │    │    ├── a.txt\n" +
		" │    │    └── b.txt\n" +
		" │    └── music (1 child)\n" +
		" │         └── c.mp3\n" +
		" └── v (1 child)\n" +
		"      └── d.txt\n"
	assert.Equal(t, want, tree.String())

	node, ok := tree.Find(filepath.FromSlash("/home/u/music"))
	require.True(t, ok)
	assert.Equal(t, "music", node.Name)
	assert.Len(t, node.Children, 1)

	_, ok = tree.Find(filepath.FromSlash("/home/w"))
	assert.False(t, ok)
}

func TestBuild_ReusesSegmentsAfterClimbing(t *testing.T) {
	tree := Build(recordsFor("/a/x/1.txt", "/a/y/2.txt", "/a/x/3.txt"))

	// Input is not path-sorted, but the linear child scan still finds /a/x.
	x, ok := tree.Find(filepath.FromSlash("/a/x"))
	require.True(t, ok)
	assert.Len(t, x.Children, 2)
	assert.Equal(t, 7, tree.Len())
}

func TestBuild_UnsortedInputKeepsFirstAppearanceOrder(t *testing.T) {
	tree := Build(recordsFor("/b/1.txt", "/a/2.txt", "/b/3.txt"))

	want := "b (2 children)\n" +
		" ├── 1.txt\n" +
		" └── 3.txt\n" +
		"a (1 child)\n" +
		" └── 2.txt\n"
	assert.Equal(t, want, tree.String())
	assert.Equal(t, 6, tree.Len())
}

func TestBuild_Empty(t *testing.T) {
	tree := Build(nil)
	assert.Equal(t, 1, tree.Len())
	assert.True(t, tree.Root().IsLeaf())
	assert.Empty(t, tree.String())
}
