package fileops

import (
	"context"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
)

// FileOperations defines the interface for single-file operations
type FileOperations interface {
	CopyFile(ctx context.Context, srcPath, dstPath string) error
	MoveFile(ctx context.Context, srcPath, dstPath string) error
	DeleteFile(ctx context.Context, path string) error
	RemapTarget(source, destination, path string) (string, bool)
}

// BatchOperations defines the interface for batch operations
type BatchOperations interface {
	CopyBatch(ctx context.Context, records []types.FileRecord, destination string) (*types.OperationResult, error)
	MoveBatch(ctx context.Context, records []types.FileRecord, destination string) (*types.OperationResult, error)
	DeleteBatch(ctx context.Context, records []types.FileRecord) (*types.OperationResult, error)
	RemapBatch(ctx context.Context, records []types.FileRecord, source, destination string) (*types.OperationResult, error)
}

var (
	_ FileOperations  = (*FileOps)(nil)
	_ BatchOperations = (*BatchOps)(nil)
)
