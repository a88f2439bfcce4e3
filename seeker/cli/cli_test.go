package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTrash struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingTrash) Trash(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return os.Remove(path)
}

// run executes the root command with an isolated settings file.
func run(t *testing.T, trash *recordingTrash, args ...string) (string, error) {
	t.Helper()
	if trash == nil {
		trash = &recordingTrash{}
	}
	cmd := newRootCommand(trash)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "settings.json")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"docs/readme.txt":  "hello",
		"docs/copy.txt":    "hello",
		"src/main.go":      "package main",
		"notes.txt":        "notes",
		"deep/a/b/far.txt": "far",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestSearchCommand(t *testing.T) {
	root := seedTree(t)
	exported := filepath.Join(t.TempDir(), "found.json")

	out, err := run(t, nil, "search", root, "--pattern", `\.txt$`, "--depth", "2", "--hash", "-o", exported)
	require.NoError(t, err)

	assert.Contains(t, out, "3 files")
	assert.Contains(t, out, filepath.Join(root, "notes.txt"))
	assert.NotContains(t, out, "far.txt")

	records, err := results.ImportFile(exported)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Len(t, r.Hash, 64)
	}
	assert.Equal(t, filepath.Join(root, "docs", "copy.txt"), records[0].Path, "sorted by path")
}

func TestSearchCommand_Dedup(t *testing.T) {
	root := seedTree(t)
	exported := filepath.Join(t.TempDir(), "found.yaml")

	_, err := run(t, nil, "search", root, "--pattern", `^(readme|copy)\.txt$`, "--dedup", "-q", "-o", exported)
	require.NoError(t, err)

	records, err := results.ImportFile(exported)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSearchCommand_ConfigErrors(t *testing.T) {
	root := seedTree(t)

	_, err := run(t, nil, "search", root, "--pattern", "([")
	assert.True(t, common.IsConfigError(err))

	_, err = run(t, nil, "search", root, "--from", "2023-02-30", "--to", "2023-03-01")
	assert.ErrorIs(t, err, common.ErrInvalidDate)

	_, err = run(t, nil, "search", root, "--within", "3 fortnights")
	assert.ErrorIs(t, err, common.ErrUnknownUnit)

	_, err = run(t, nil, "search", root, "--sort", "colour")
	assert.ErrorIs(t, err, common.ErrUnknownSortField)
}

func TestSearchCommand_TimeFlags(t *testing.T) {
	root := seedTree(t)

	out, err := run(t, nil, "search", root, "--within", "1day")
	require.NoError(t, err)
	assert.Contains(t, out, "5 files")

	out, err = run(t, nil, "search", root, "--older-than", "1 day")
	require.NoError(t, err)
	assert.Contains(t, out, "0 files")
}

func TestViewCommands(t *testing.T) {
	root := seedTree(t)
	exported := filepath.Join(t.TempDir(), "all.json")
	_, err := run(t, nil, "search", root, "-q", "--hash", "-o", exported)
	require.NoError(t, err)

	out, err := run(t, nil, "tree", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "docs (2 children)")
	assert.Contains(t, out, "└── far.txt")

	out, err = run(t, nil, "summary", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Files:")
	assert.Contains(t, out, "Duplicate groups:  1")

	out, err = run(t, nil, "tree", exported, "--select", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "docs")

	out, err = run(t, nil, "tree", exported, "--exclude", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "far.txt")
	assert.Contains(t, out, "docs (2 children)")

	out, err = run(t, nil, "tree", exported, "--select", "0-2", "--exclude", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "far.txt")
	assert.Contains(t, out, "docs (1 child)")
	assert.Contains(t, out, "readme.txt")
}

func TestSearchFromRelativeRoot(t *testing.T) {
	root := seedTree(t)
	t.Chdir(root)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	exported := filepath.Join(t.TempDir(), "rel.json")
	_, err = run(t, nil, "search", ".", "-q", "-p", `\.txt$`, "-o", exported)
	require.NoError(t, err)

	records, err := results.ImportFile(exported)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.True(t, filepath.IsAbs(r.Path), r.Path)
	}

	dst := t.TempDir()
	out, err := run(t, nil, "remap", exported, filepath.Join(cwd, "docs"), dst)
	require.NoError(t, err)
	assert.Contains(t, out, "remapped 2 of 2 files (2 skipped)")
	assert.FileExists(t, filepath.Join(dst, "readme.txt"))
}

func TestOperationCommands(t *testing.T) {
	root := seedTree(t)
	exported := filepath.Join(t.TempDir(), "docs.json")
	_, err := run(t, nil, "search", filepath.Join(root, "docs"), "-q", "-o", exported)
	require.NoError(t, err)

	t.Run("copy", func(t *testing.T) {
		dst := t.TempDir()
		out, err := run(t, nil, "copy", exported, dst)
		require.NoError(t, err)
		assert.Contains(t, out, "copied 2 of 2 files")
		assert.FileExists(t, filepath.Join(dst, "readme.txt"))
	})

	t.Run("remap", func(t *testing.T) {
		dst := t.TempDir()
		out, err := run(t, nil, "remap", exported, root, dst)
		require.NoError(t, err)
		assert.Contains(t, out, "remapped 2 of 2 files")
		assert.FileExists(t, filepath.Join(dst, "docs", "copy.txt"))
	})

	t.Run("delete selected", func(t *testing.T) {
		trash := &recordingTrash{}
		out, err := run(t, trash, "delete", exported, "--select", "1", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "deleted 1 of 1 files")
		assert.Equal(t, []string{filepath.Join(root, "docs", "readme.txt")}, trash.paths)
	})

	t.Run("move", func(t *testing.T) {
		dst := t.TempDir()
		out, err := run(t, nil, "move", exported, dst)
		require.NoError(t, err)
		// readme.txt was trashed by the previous step.
		assert.Contains(t, out, "moved 1 of 2 files")
		assert.FileExists(t, filepath.Join(dst, "copy.txt"))
	})
}

func TestSettingsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	cmd := newRootCommand(nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "settings", "init"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = newRootCommand(nil)
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "settings", "show"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "search_depth: 255")
}

func TestParseAge(t *testing.T) {
	d, err := parseAge("2 weeks")
	require.NoError(t, err)
	assert.Equal(t, "336h0m0s", d.String())

	_, err = parseAge("weeks")
	assert.True(t, common.IsConfigError(err))
}
