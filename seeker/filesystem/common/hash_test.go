package common

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("known digest", func(t *testing.T) {
		path := filepath.Join(dir, "hello.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

		digest, err := HashFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		digest, err := HashFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest)
	})

	t.Run("larger than one buffer", func(t *testing.T) {
		content := strings.Repeat("x", HashBufferSize*3+17)
		path := filepath.Join(dir, "big")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		fromFile, err := HashFile(context.Background(), path)
		require.NoError(t, err)
		fromReader, err := HashReader(context.Background(), strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, fromReader, fromFile)
		assert.Len(t, fromFile, 64)
	})

	t.Run("missing file is an io error", func(t *testing.T) {
		_, err := HashFile(context.Background(), filepath.Join(dir, "missing"))
		require.Error(t, err)
		assert.True(t, IsIoError(err))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("cancelled context passes through", func(t *testing.T) {
		path := filepath.Join(dir, "hello.txt")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := HashFile(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, IsIoError(err))
	})
}

