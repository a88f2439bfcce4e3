package filesystem

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/config"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/fileops"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filter"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"
	"github.com/ZanzyTHEbar/file-seeker/seeker/trees"

	"github.com/rs/zerolog"
)

// Searcher bundles the traversal engine with the operations callers run on
// its output. It holds no per-search state; every call is independent.
type Searcher struct {
	traversal options.TraversalOptions
	batchOps  *fileops.BatchOps
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSearcher wires a Searcher. A nil trasher sends deletions to the OS trash.
func NewSearcher(traversal options.TraversalOptions, batch options.BatchOptions, trasher fileops.Trasher) *Searcher {
	return &Searcher{
		traversal: traversal,
		batchOps:  fileops.NewBatchOps(fileops.NewFileOps(trasher, batch.Logger), batch),
		logger:    traversal.Logger,
		now:       time.Now,
	}
}

// Search walks roots down to maxDepth and returns the files matching criteria.
func (s *Searcher) Search(ctx context.Context, roots []string, maxDepth int, criteria *filter.Criteria) (*types.WalkResult, error) {
	return NewConcurrentTraverser(s.traversal).Walk(ctx, roots, maxDepth, criteria)
}

// SearchSettings runs a search described by persisted settings. Relative time
// limits are anchored at the moment of the call.
func (s *Searcher) SearchSettings(ctx context.Context, roots []string, settings *config.Settings) (*types.WalkResult, error) {
	criteria, err := settings.Criteria(s.now())
	if err != nil {
		return nil, err
	}

	opts := s.traversal
	if settings.Workers > 0 {
		opts.WorkerCount = settings.Workers
	}
	return NewConcurrentTraverser(opts).Walk(ctx, roots, settings.SearchDepth, criteria)
}

// Tree sorts records by path and builds the folder hierarchy from them.
func (s *Searcher) Tree(records []types.FileRecord) *trees.FolderTree {
	sorted := results.Sort(records, options.SortCriteria{Field: options.SortByPath, Direction: options.SortAsc})
	return trees.Build(sorted)
}

// Copy copies the selected records into destination. A nil selection means all records.
func (s *Searcher) Copy(ctx context.Context, records []types.FileRecord, sel *results.Selection, destination string) (*types.OperationResult, error) {
	return s.batchOps.CopyBatch(ctx, selected(records, sel), destination)
}

// Move moves the selected records into destination.
func (s *Searcher) Move(ctx context.Context, records []types.FileRecord, sel *results.Selection, destination string) (*types.OperationResult, error) {
	return s.batchOps.MoveBatch(ctx, selected(records, sel), destination)
}

// Delete trashes the selected records.
func (s *Searcher) Delete(ctx context.Context, records []types.FileRecord, sel *results.Selection) (*types.OperationResult, error) {
	return s.batchOps.DeleteBatch(ctx, selected(records, sel))
}

// Remap reproduces the selected records found under source beneath destination.
func (s *Searcher) Remap(ctx context.Context, records []types.FileRecord, sel *results.Selection, source, destination string) (*types.OperationResult, error) {
	return s.batchOps.RemapBatch(ctx, selected(records, sel), source, destination)
}

func selected(records []types.FileRecord, sel *results.Selection) []types.FileRecord {
	if sel == nil {
		return records
	}
	return sel.Apply(records)
}
