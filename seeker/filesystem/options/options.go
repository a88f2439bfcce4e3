package options

import (
	"runtime"

	internal "github.com/ZanzyTHEbar/file-seeker/seeker"

	"github.com/rs/zerolog"
)

// TraversalOptions configures directory traversal operations
type TraversalOptions struct {
	WorkerCount    int            // Concurrent directory readers per level
	IgnoreFileName string         // Per-directory gitignore-style file, empty disables
	Logger         zerolog.Logger // Structured logger for warnings and stats
}

// BatchOptions configures bulk copy/move/delete/remap operations
type BatchOptions struct {
	WorkerCount int
	Logger      zerolog.Logger
}

// SortField selects the key used when ordering records
type SortField string

const (
	SortByName    SortField = "name"
	SortBySize    SortField = "size"
	SortByModTime SortField = "time"
	SortByPath    SortField = "path"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortCriteria defines sorting options for result collections
type SortCriteria struct {
	Field     SortField
	Direction SortDirection
}

// DefaultWorkerCount is CPU cores * 2 for I/O bound work, clamped to [4, 32].
func DefaultWorkerCount() int {
	return min(max(runtime.NumCPU()*2, 4), 32)
}

// DefaultTraversalOptions returns sensible defaults for traversal operations
func DefaultTraversalOptions() TraversalOptions {
	return TraversalOptions{
		WorkerCount:    DefaultWorkerCount(),
		IgnoreFileName: internal.DefaultIgnoreFile,
		Logger:         internal.GetLogger(),
	}
}

// DefaultBatchOptions returns sensible defaults for batch operations
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		WorkerCount: 4,
		Logger:      internal.GetLogger(),
	}
}

// DefaultSortCriteria sorts by path ascending, the order the tree builder needs.
func DefaultSortCriteria() SortCriteria {
	return SortCriteria{Field: SortByPath, Direction: SortAsc}
}
