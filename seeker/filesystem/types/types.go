package types

import (
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
)

// FileRecord is one matched file. Records are values: they are produced once
// per walk and replaced wholesale, never edited in place.
type FileRecord struct {
	Path string `json:"path" yaml:"path"`
	Name string `json:"name" yaml:"name"`
	Size uint64 `json:"size" yaml:"size"`
	Time uint64 `json:"time" yaml:"time"` // seconds since the Unix epoch
	Hash string `json:"hash" yaml:"hash"` // hex SHA-256, empty when hashing was disabled
}

// ModTime returns the record's modification time in UTC.
func (r FileRecord) ModTime() time.Time {
	return time.Unix(int64(r.Time), 0).UTC()
}

// TraversalStats tracks performance metrics during traversal
type TraversalStats struct {
	DirsProcessed int64
	FilesSeen     int64
	FilesMatched  int64
	FilesHashed   int64
	ErrorsFound   int64
	Duration      time.Duration
}

// WalkResult is the merged output of one traversal run.
type WalkResult struct {
	RunID    string
	Records  []FileRecord
	Warnings []*common.IoError
	Stats    TraversalStats
}

// OperationKind names a bulk file operation.
type OperationKind string

const (
	OpCopy   OperationKind = "copy"
	OpMove   OperationKind = "move"
	OpDelete OperationKind = "delete"
	OpRemap  OperationKind = "remap"
)

var pastTense = map[OperationKind]string{
	OpCopy:   "copied",
	OpMove:   "moved",
	OpDelete: "deleted",
	OpRemap:  "remapped",
}

// OperationResult contains the aggregate outcome of a bulk file operation.
// Per-file failures land in Errors; they never turn into a returned error.
type OperationResult struct {
	ID        string            `json:"id"`
	Op        OperationKind     `json:"op"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Skipped   int               `json:"skipped"`
	Errors    []*common.IoError `json:"-"`
	Duration  time.Duration     `json:"duration"`
}

// Failed returns how many attempted files did not complete.
func (r *OperationResult) Failed() int {
	return len(r.Errors)
}

// Attempted returns the number of records the operation actually tried.
func (r *OperationResult) Attempted() int {
	return r.Total - r.Skipped
}

// AllFailed reports the "0 of N succeeded" outcome.
func (r *OperationResult) AllFailed() bool {
	return r.Attempted() > 0 && r.Succeeded == 0
}

// Summary renders the user-facing count, e.g. "copied 8 of 10 files".
func (r *OperationResult) Summary() string {
	verb, ok := pastTense[r.Op]
	if !ok {
		verb = string(r.Op)
	}
	s := fmt.Sprintf("%s %d of %d files", verb, r.Succeeded, r.Attempted())
	if r.Skipped > 0 {
		s += fmt.Sprintf(" (%d skipped)", r.Skipped)
	}
	return s
}
