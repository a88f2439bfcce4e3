package fileops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"

	"github.com/Bios-Marcel/wastebasket/v2"
	"github.com/rs/zerolog"
)

// copyBufferSize matches the hasher's read size.
const copyBufferSize = common.HashBufferSize

// Trasher sends a file to a recoverable location instead of unlinking it.
type Trasher interface {
	Trash(path string) error
}

// OSTrash moves files to the desktop trash or recycle bin.
type OSTrash struct{}

func (OSTrash) Trash(path string) error {
	return wastebasket.Trash(path)
}

// FileOps provides the single-file primitives that batches are built from.
// Paths are expected to be absolute; relative paths resolve against the
// process working directory and are not rejected.
type FileOps struct {
	trasher   Trasher
	pathUtils *common.PathUtils
	logger    zerolog.Logger
}

// NewFileOps creates a new file operations instance. A nil trasher selects OSTrash.
func NewFileOps(trasher Trasher, logger zerolog.Logger) *FileOps {
	if trasher == nil {
		trasher = OSTrash{}
	}
	return &FileOps{
		trasher:   trasher,
		pathUtils: common.NewPathUtils(),
		logger:    logger,
	}
}

// CopyFile copies srcPath to dstPath, creating parent directories and
// overwriting an existing destination.
func (fo *FileOps) CopyFile(ctx context.Context, srcPath, dstPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sameFile(srcPath, dstPath) {
		return common.NewIoError("copy", srcPath, errors.New("source and destination are the same file"))
	}

	n, err := fo.performFileCopy(ctx, srcPath, dstPath)
	if err != nil {
		return common.NewIoError("copy", srcPath, err)
	}

	fo.logger.Debug().Str("src", srcPath).Str("dst", dstPath).Int64("bytes", n).Msg("File copied")
	return nil
}

// MoveFile renames srcPath to dstPath, falling back to copy and remove when
// the two live on different devices.
func (fo *FileOps) MoveFile(ctx context.Context, srcPath, dstPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sameFile(srcPath, dstPath) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return common.NewIoError("move", srcPath, fmt.Errorf("failed to create destination directory: %w", err))
	}

	err := os.Rename(srcPath, dstPath)
	if err == nil {
		fo.logger.Debug().Str("src", srcPath).Str("dst", dstPath).Msg("File renamed")
		return nil
	}
	if !isCrossDeviceError(err) {
		return common.NewIoError("move", srcPath, err)
	}

	if _, err := fo.performFileCopy(ctx, srcPath, dstPath); err != nil {
		return common.NewIoError("move", srcPath, fmt.Errorf("failed to copy file during move: %w", err))
	}
	if err := os.Remove(srcPath); err != nil {
		return common.NewIoError("move", srcPath, fmt.Errorf("failed to remove source file after copy: %w", err))
	}

	fo.logger.Debug().Str("src", srcPath).Str("dst", dstPath).Msg("File moved across devices")
	return nil
}

// DeleteFile sends path to the trash.
func (fo *FileOps) DeleteFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fo.trasher.Trash(path); err != nil {
		return common.NewIoError("delete", path, err)
	}
	fo.logger.Debug().Str("path", path).Msg("File trashed")
	return nil
}

// RemapTarget returns where path lands when the subtree at source is
// reproduced under destination. ok is false for paths outside source.
func (fo *FileOps) RemapTarget(source, destination, path string) (string, bool) {
	rel, ok := fo.pathUtils.RelativeInside(source, path)
	if !ok {
		return "", false
	}
	return filepath.Join(destination, rel), true
}

func (fo *FileOps) performFileCopy(ctx context.Context, srcPath, dstPath string) (int64, error) {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat source file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create destination directory: %w", err)
	}

	dstFile, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	n, err := copyWithContext(ctx, dstFile, srcFile)
	if closeErr := dstFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("failed to copy file content: %w", err)
	}
	return n, nil
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buffer := make([]byte, copyBufferSize)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, readErr := src.Read(buffer)
		if n > 0 {
			if _, writeErr := dst.Write(buffer[:n]); writeErr != nil {
				return total, writeErr
			}
			total += int64(n)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return total, nil
			}
			return total, readErr
		}
	}
}

func isCrossDeviceError(err error) bool {
	return errors.Is(err, syscall.EXDEV) || strings.Contains(err.Error(), "cross-device link")
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
