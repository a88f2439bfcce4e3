package results

import (
	"math"
	"slices"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a record collection at a glance.
type Summary struct {
	Count           int
	TotalBytes      uint64
	MeanSize        float64
	MedianSize      float64
	StdDevSize      float64
	Oldest          time.Time
	Newest          time.Time
	DuplicateGroups int
	DuplicateBytes  uint64 // bytes that a dedup would reclaim
}

// Summarize computes size and age statistics for records.
func Summarize(records []types.FileRecord) Summary {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s
	}

	sizes := make([]float64, len(records))
	oldest, newest := records[0].Time, records[0].Time
	for i, r := range records {
		sizes[i] = float64(r.Size)
		s.TotalBytes += r.Size
		oldest = min(oldest, r.Time)
		newest = max(newest, r.Time)
	}
	s.Oldest = time.Unix(int64(oldest), 0).UTC()
	s.Newest = time.Unix(int64(newest), 0).UTC()

	slices.Sort(sizes)
	s.MeanSize = stat.Mean(sizes, nil)
	s.MedianSize = stat.Quantile(0.5, stat.Empirical, sizes, nil)
	if len(sizes) > 1 {
		s.StdDevSize = stat.StdDev(sizes, nil)
	}
	if math.IsNaN(s.StdDevSize) {
		s.StdDevSize = 0
	}

	for _, group := range DuplicateGroups(records) {
		s.DuplicateGroups++
		s.DuplicateBytes += group[0].Size * uint64(len(group)-1)
	}
	return s
}
