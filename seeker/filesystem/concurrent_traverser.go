package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filter"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sourcegraph/conc/pool"
)

// MaxSearchDepth is the largest depth a search accepts; 0 means unlimited.
const MaxSearchDepth = 255

// ConcurrentTraverser walks directory trees level by level. Each level is
// processed by a bounded conc result pool, so no more than maxWorkers
// directories are being read at once no matter how wide or deep the tree is.
type ConcurrentTraverser struct {
	maxWorkers     int
	ignoreFileName string
	logger         zerolog.Logger
}

// dirTask is one directory waiting to be listed. remaining counts the levels
// still allowed including this one; 0 means unlimited.
type dirTask struct {
	path      string
	remaining int
}

// walkRun is the read-only state shared by every task of one Walk call.
type walkRun struct {
	criteria *filter.Criteria
	logger   zerolog.Logger
}

// dirResult is owned by the task that produced it until the level join merges it.
type dirResult struct {
	records  []types.FileRecord
	subdirs  []dirTask
	warnings []*common.IoError
	seen     int64
	hashed   int64
}

// NewConcurrentTraverser creates a traverser bounded to opts.WorkerCount
// concurrent directory reads.
func NewConcurrentTraverser(opts options.TraversalOptions) *ConcurrentTraverser {
	workers := opts.WorkerCount
	if workers <= 0 {
		workers = options.DefaultWorkerCount()
	}
	return &ConcurrentTraverser{
		maxWorkers:     workers,
		ignoreFileName: opts.IgnoreFileName,
		logger:         opts.Logger,
	}
}

// Walk enumerates every regular file under roots that passes criteria.
//
// maxDepth 1 lists only the roots themselves, 2 adds their direct
// subdirectories and so on; 0 removes the limit. Unreadable entries are
// recorded as warnings and skipped. Only invalid arguments and context
// cancellation are returned as errors; a cancelled walk still returns what
// had been merged so far.
func (ct *ConcurrentTraverser) Walk(ctx context.Context, roots []string, maxDepth int, criteria *filter.Criteria) (*types.WalkResult, error) {
	if criteria == nil {
		return nil, common.NewConfigError("criteria", common.ErrNilCriteria)
	}
	if len(roots) == 0 {
		return nil, common.NewConfigError("roots", common.ErrNoRoots)
	}
	if maxDepth < 0 || maxDepth > MaxSearchDepth {
		return nil, common.NewConfigError("search_depth", common.ErrDepthOutOfRange)
	}

	absRoots, err := absolutePaths(roots)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &types.WalkResult{RunID: uuid.NewString()}
	logger := ct.logger.With().Str("run_id", result.RunID).Logger()
	run := &walkRun{criteria: criteria, logger: logger}

	logger.Info().
		Strs("roots", absRoots).
		Int("max_depth", maxDepth).
		Str("pattern", criteria.Pattern()).
		Bool("hash", criteria.HashContent()).
		Msg("Starting search")

	visited := make(map[string]bool)
	currentLevel := make([]dirTask, 0, len(absRoots))
	for _, root := range absRoots {
		currentLevel = appendUnvisited(currentLevel, visited, dirTask{path: root, remaining: maxDepth})
	}

	var walkErr error
	for len(currentLevel) > 0 {
		if err := ctx.Err(); err != nil {
			walkErr = err
			break
		}

		levelPool := pool.NewWithResults[dirResult]().WithMaxGoroutines(ct.maxWorkers).WithContext(ctx)
		for _, task := range currentLevel {
			levelPool.Go(func(ctx context.Context) (dirResult, error) {
				return ct.processDirectory(ctx, run, task), nil
			})
		}

		outcomes, err := levelPool.Wait()
		if err != nil {
			walkErr = err
			break
		}

		// Single-threaded merge: tasks never touch the shared result.
		nextLevel := make([]dirTask, 0)
		for _, out := range outcomes {
			result.Records = append(result.Records, out.records...)
			result.Warnings = append(result.Warnings, out.warnings...)
			result.Stats.DirsProcessed++
			result.Stats.FilesSeen += out.seen
			result.Stats.FilesHashed += out.hashed
			for _, sub := range out.subdirs {
				nextLevel = appendUnvisited(nextLevel, visited, sub)
			}
		}
		currentLevel = nextLevel
	}

	if walkErr == nil {
		walkErr = ctx.Err()
	}

	result.Stats.FilesMatched = int64(len(result.Records))
	result.Stats.ErrorsFound = int64(len(result.Warnings))
	result.Stats.Duration = time.Since(start)
	ct.logPerformanceStats(logger, result.Stats, walkErr)

	return result, walkErr
}

// absolutePaths resolves roots against the working directory so every record
// carries an absolute path.
func absolutePaths(roots []string) ([]string, error) {
	out := make([]string, len(roots))
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, common.NewConfigError("roots", fmt.Errorf("resolve %q: %w", root, err))
		}
		out[i] = abs
	}
	return out, nil
}

func appendUnvisited(level []dirTask, visited map[string]bool, task dirTask) []dirTask {
	if visited[task.path] {
		return level
	}
	visited[task.path] = true
	return append(level, task)
}

// processDirectory lists one directory and evaluates its direct entries.
func (ct *ConcurrentTraverser) processDirectory(ctx context.Context, run *walkRun, task dirTask) dirResult {
	var out dirResult

	if ctx.Err() != nil {
		return out
	}

	// ReadDir returns the entries it managed to read alongside the error.
	entries, err := os.ReadDir(task.path)
	if err != nil {
		out.warn(run.logger, common.NewIoError("read_dir", task.path, err))
		if len(entries) == 0 {
			return out
		}
	}

	ignored := ct.loadIgnore(run, task.path, &out)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return out
		}

		name := entry.Name()
		childPath := filepath.Join(task.path, name)

		if entry.IsDir() {
			if ignored != nil && ignored.MatchesPath(name+"/") {
				continue
			}
			ct.visitSubdirectory(run, task, entry, childPath, &out)
			continue
		}

		if ignored != nil && ignored.MatchesPath(name) {
			continue
		}
		ct.visitFile(ctx, run, name, childPath, &out)
	}

	return out
}

func (ct *ConcurrentTraverser) visitSubdirectory(run *walkRun, parent dirTask, entry os.DirEntry, childPath string, out *dirResult) {
	if parent.remaining == 1 {
		return
	}

	if !run.criteria.IncludeHiddenFolders() {
		info, err := entry.Info()
		if err != nil {
			out.warn(run.logger, common.NewIoError("stat", childPath, err))
			return
		}
		if filter.IsHidden(info) {
			return
		}
	}

	remaining := parent.remaining
	if remaining > 0 {
		remaining--
	}
	out.subdirs = append(out.subdirs, dirTask{path: childPath, remaining: remaining})
}

// visitFile applies pattern, predicate and hasher in increasing order of cost.
func (ct *ConcurrentTraverser) visitFile(ctx context.Context, run *walkRun, name, childPath string, out *dirResult) {
	criteria := run.criteria
	out.seen++

	if !criteria.MatchPattern(name, childPath) {
		return
	}

	// Stat follows symlinks so links to files are judged by their target.
	info, err := os.Stat(childPath)
	if err != nil {
		out.warn(run.logger, common.NewIoError("stat", childPath, err))
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	meta := filter.MetadataOf(info)
	if !filter.Matches(meta, criteria) {
		return
	}

	record := types.FileRecord{
		Path: childPath,
		Name: name,
		Size: meta.Size,
		Time: unixSeconds(meta.ModTime),
	}

	if criteria.HashContent() {
		digest, err := common.HashFile(ctx, childPath)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			var ioErr *common.IoError
			if !errors.As(err, &ioErr) {
				ioErr = common.NewIoError("hash", childPath, err)
			}
			out.warn(run.logger, ioErr)
			return
		}
		record.Hash = digest
		out.hashed++
	}

	run.logger.Debug().Str("path", childPath).Uint64("size", record.Size).Msg("Matched file")
	out.records = append(out.records, record)
}

// loadIgnore compiles the directory's ignore file if one exists.
func (ct *ConcurrentTraverser) loadIgnore(run *walkRun, dir string, out *dirResult) *ignore.GitIgnore {
	if ct.ignoreFileName == "" {
		return nil
	}

	ignorePath := filepath.Join(dir, ct.ignoreFileName)
	if _, err := os.Stat(ignorePath); err != nil {
		if !os.IsNotExist(err) {
			out.warn(run.logger, common.NewIoError("stat", ignorePath, err))
		}
		return nil
	}

	ignored, err := ignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		out.warn(run.logger, common.NewIoError("read_ignore", ignorePath, err))
		return nil
	}
	return ignored
}

func (out *dirResult) warn(logger zerolog.Logger, err *common.IoError) {
	logger.Warn().Str("op", err.Op).Str("path", err.Path).Err(err.Err).Msg("Skipping unreadable entry")
	out.warnings = append(out.warnings, err)
}

func unixSeconds(t time.Time) uint64 {
	ts := t.Unix()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

// logPerformanceStats logs traversal performance metrics
func (ct *ConcurrentTraverser) logPerformanceStats(logger zerolog.Logger, stats types.TraversalStats, walkErr error) {
	event := logger.Info()
	if walkErr != nil {
		event = logger.Warn().Err(walkErr)
	}

	filesPerSec := 0.0
	if stats.Duration > 0 {
		filesPerSec = float64(stats.FilesSeen) / stats.Duration.Seconds()
	}

	event.
		Int64("dirs", stats.DirsProcessed).
		Int64("files_seen", stats.FilesSeen).
		Int64("files_matched", stats.FilesMatched).
		Int64("files_hashed", stats.FilesHashed).
		Int64("errors", stats.ErrorsFound).
		Dur("duration", stats.Duration).
		Float64("files_per_sec", filesPerSec).
		Msg("Traversal completed")
}
