package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockSuffix names the sidecar file guarding a result or settings file.
const lockSuffix = ".lock"

// WithFileLock runs fn while holding an exclusive advisory lock on
// "<path>.lock". The parent directory of path is created first, so fn can
// write path without preparing it.
func WithFileLock(path string, fn func() error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer lock.Unlock()

	return fn()
}

// LockAndWrite replaces path with data under its lock. Readers see either the
// previous document or the new one, never a partial write.
func LockAndWrite(path string, data []byte) error {
	return WithFileLock(path, func() error {
		return replaceFile(path, data)
	})
}

// replaceFile stages data in a temp file beside path and renames it into place.
func replaceFile(path string, data []byte) (err error) {
	staged, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	stagedPath := staged.Name()
	defer func() {
		if err != nil {
			staged.Close()
			os.Remove(stagedPath)
		}
	}()

	if _, err = staged.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", stagedPath, err)
	}
	if err = staged.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", stagedPath, err)
	}
	if err = staged.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", stagedPath, err)
	}
	// CreateTemp uses 0600; exported results are meant to be shared.
	if err = os.Chmod(stagedPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", stagedPath, err)
	}
	if err = os.Rename(stagedPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
