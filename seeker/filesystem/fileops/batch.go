package fileops

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// BatchOps handles batch file operations with concurrency control.
type BatchOps struct {
	fileOps    *FileOps
	maxWorkers int
	logger     zerolog.Logger
}

// job is one file to process. Jobs sharing a target are chained so they run in
// input order on one worker.
type job struct {
	index  int
	source string
	target string
}

type outcome struct {
	index int
	err   error
}

// NewBatchOps creates a new batch operations instance
func NewBatchOps(fileOps *FileOps, opts options.BatchOptions) *BatchOps {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = options.DefaultBatchOptions().WorkerCount
	}
	if fileOps == nil {
		fileOps = NewFileOps(nil, opts.Logger)
	}
	return &BatchOps{
		fileOps:    fileOps,
		maxWorkers: opts.WorkerCount,
		logger:     opts.Logger,
	}
}

// CopyBatch copies every record into destination, keeping base names.
func (bo *BatchOps) CopyBatch(ctx context.Context, records []types.FileRecord, destination string) (*types.OperationResult, error) {
	jobs := make([]job, len(records))
	for i, r := range records {
		jobs[i] = job{index: i, source: r.Path, target: filepath.Join(destination, filepath.Base(r.Path))}
	}
	return bo.run(ctx, types.OpCopy, len(records), 0, jobs, func(ctx context.Context, j job) error {
		return bo.fileOps.CopyFile(ctx, j.source, j.target)
	})
}

// MoveBatch moves every record into destination, keeping base names.
func (bo *BatchOps) MoveBatch(ctx context.Context, records []types.FileRecord, destination string) (*types.OperationResult, error) {
	jobs := make([]job, len(records))
	for i, r := range records {
		jobs[i] = job{index: i, source: r.Path, target: filepath.Join(destination, filepath.Base(r.Path))}
	}
	return bo.run(ctx, types.OpMove, len(records), 0, jobs, func(ctx context.Context, j job) error {
		return bo.fileOps.MoveFile(ctx, j.source, j.target)
	})
}

// DeleteBatch sends every record to the trash.
func (bo *BatchOps) DeleteBatch(ctx context.Context, records []types.FileRecord) (*types.OperationResult, error) {
	jobs := make([]job, len(records))
	for i, r := range records {
		jobs[i] = job{index: i, source: r.Path, target: r.Path}
	}
	return bo.run(ctx, types.OpDelete, len(records), 0, jobs, func(ctx context.Context, j job) error {
		return bo.fileOps.DeleteFile(ctx, j.source)
	})
}

// RemapBatch copies the records found under source to destination,
// reproducing their layout relative to source. Records elsewhere are counted
// as skipped.
func (bo *BatchOps) RemapBatch(ctx context.Context, records []types.FileRecord, source, destination string) (*types.OperationResult, error) {
	inside := results.NewPathIndex(records).Under(source)

	jobs := make([]job, 0, len(inside))
	for _, r := range inside {
		target, ok := bo.fileOps.RemapTarget(source, destination, r.Path)
		if !ok {
			continue
		}
		jobs = append(jobs, job{index: len(jobs), source: r.Path, target: target})
	}

	return bo.run(ctx, types.OpRemap, len(records), len(records)-len(jobs), jobs, func(ctx context.Context, j job) error {
		return bo.fileOps.CopyFile(ctx, j.source, j.target)
	})
}

func (bo *BatchOps) run(ctx context.Context, op types.OperationKind, total, skipped int, jobs []job, do func(context.Context, job) error) (*types.OperationResult, error) {
	start := time.Now()
	result := &types.OperationResult{
		ID:      uuid.New().String(),
		Op:      op,
		Total:   total,
		Skipped: skipped,
	}
	logger := bo.logger.With().Str("op", string(op)).Str("batch_id", result.ID).Logger()

	p := pool.NewWithResults[[]outcome]().WithMaxGoroutines(bo.maxWorkers)
	for _, chain := range groupByTarget(jobs) {
		p.Go(func() []outcome {
			outcomes := make([]outcome, 0, len(chain))
			for _, j := range chain {
				outcomes = append(outcomes, outcome{index: j.index, err: do(ctx, j)})
			}
			return outcomes
		})
	}

	var all []outcome
	for _, outcomes := range p.Wait() {
		all = append(all, outcomes...)
	}
	slices.SortFunc(all, func(a, b outcome) int { return a.index - b.index })

	for _, o := range all {
		if o.err == nil {
			result.Succeeded++
			continue
		}
		var ioErr *common.IoError
		if !errors.As(o.err, &ioErr) {
			ioErr = common.NewIoError(string(op), jobs[o.index].source, o.err)
		}
		result.Errors = append(result.Errors, ioErr)
		logger.Error().Err(ioErr).Str("path", ioErr.Path).Msg("Batch operation failed")
	}
	result.Duration = time.Since(start)

	event := logger.Info()
	if result.AllFailed() {
		event = logger.Warn()
	}
	event.Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed()).
		Int("skipped", result.Skipped).
		Dur("duration", result.Duration).
		Msg("Batch operation completed")

	return result, ctx.Err()
}

// groupByTarget chains jobs writing to the same target, preserving input order
// inside each chain and the order of first appearance across chains.
func groupByTarget(jobs []job) [][]job {
	chains := make([][]job, 0, len(jobs))
	byTarget := make(map[string]int, len(jobs))
	for _, j := range jobs {
		key := filepath.Clean(j.target)
		if at, ok := byTarget[key]; ok {
			chains[at] = append(chains[at], j)
			continue
		}
		byTarget[key] = len(chains)
		chains = append(chains, []job{j})
	}
	return chains
}
