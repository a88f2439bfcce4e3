package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	roaring "github.com/RoaringBitmap/roaring"
)

// Selection is a set of record positions within a collection, the "selected
// subset" handed to bulk operations.
type Selection struct {
	bitmap *roaring.Bitmap
}

// NewSelection selects the given positions.
func NewSelection(positions ...uint32) *Selection {
	return &Selection{bitmap: roaring.BitmapOf(positions...)}
}

// SelectAll selects positions [0, n).
func SelectAll(n int) *Selection {
	bm := roaring.New()
	if n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return &Selection{bitmap: bm}
}

// ParseSelection reads comma separated positions and inclusive ranges,
// e.g. "0,2,5-9". "all" is not accepted here; use SelectAll.
func ParseSelection(expr string) (*Selection, error) {
	bm := roaring.New()
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 32)
		if err != nil {
			return nil, selectionError(part)
		}
		end := start
		if isRange {
			end, err = strconv.ParseUint(strings.TrimSpace(hi), 10, 32)
			if err != nil || end < start {
				return nil, selectionError(part)
			}
		}
		bm.AddRange(start, end+1)
	}

	if bm.IsEmpty() {
		return nil, selectionError(expr)
	}
	return &Selection{bitmap: bm}, nil
}

func selectionError(part string) error {
	return common.NewConfigError("select", fmt.Errorf("%w: %q", common.ErrInvalidSelection, part))
}

// Len returns the number of selected positions.
func (s *Selection) Len() int {
	return int(s.bitmap.GetCardinality())
}

// Contains reports whether position i is selected.
func (s *Selection) Contains(i int) bool {
	return i >= 0 && s.bitmap.Contains(uint32(i))
}

// Invert returns the complement of s within [0, n).
func (s *Selection) Invert(n int) *Selection {
	if n <= 0 {
		return &Selection{bitmap: roaring.New()}
	}
	flipped := roaring.Flip(s.bitmap, 0, uint64(n))
	flipped.RemoveRange(uint64(n), uint64(1)<<32)
	return &Selection{bitmap: flipped}
}

// Intersect returns the positions selected in both s and other.
func (s *Selection) Intersect(other *Selection) *Selection {
	return &Selection{bitmap: roaring.And(s.bitmap, other.bitmap)}
}

// Apply returns the selected records in collection order. Positions past the
// end of records are ignored.
func (s *Selection) Apply(records []types.FileRecord) []types.FileRecord {
	out := make([]types.FileRecord, 0, min(s.Len(), len(records)))
	it := s.bitmap.Iterator()
	for it.HasNext() {
		pos := int(it.Next())
		if pos >= len(records) {
			break
		}
		out = append(out, records[pos])
	}
	return out
}
