// Package filter holds the immutable search criteria for one run and the pure
// predicates evaluated against every file the traversal visits.
package filter

import (
	"math"
	"regexp"
	"time"
)

// PatternTarget selects what the pattern is tested against.
type PatternTarget int

const (
	TargetName PatternTarget = iota // base name only
	TargetPath                      // full absolute path
)

func (t PatternTarget) String() string {
	if t == TargetPath {
		return "path"
	}
	return "name"
}

// Polarity says whether a relative time limit wants files newer or older than
// the cutoff. The zero value is deliberately invalid.
type Polarity int

const (
	PolarityUnset Polarity = iota
	PolarityNewer
	PolarityOlder
)

func (p Polarity) String() string {
	switch p {
	case PolarityNewer:
		return "newer"
	case PolarityOlder:
		return "older"
	default:
		return "unset"
	}
}

// TimeLimitKind tags the TimeLimit variant.
type TimeLimitKind int

const (
	TimeLimitNone TimeLimitKind = iota
	TimeLimitRelative
	TimeLimitAbsolute
)

// TimeLimit is a tagged union: only the fields of the active Kind are meaningful.
//
// Relative limits carry the duration, the polarity and the cutoff (now - duration)
// computed once when the criteria were built. Absolute limits carry the half-open
// interval [Min, MaxExclusive) in Unix seconds.
type TimeLimit struct {
	Kind TimeLimitKind

	Duration time.Duration
	Polarity Polarity
	Cutoff   time.Time

	Min          int64
	MaxExclusive int64
}

// Criteria is the resolved, read-only configuration of one search. It is built
// by Builder and shared by every concurrent traversal unit of that search.
type Criteria struct {
	includeHiddenFiles   bool
	includeHiddenFolders bool
	includeReadOnly      bool
	includeSystem        bool

	minSize uint64
	maxSize uint64

	timeLimit TimeLimit

	pattern *regexp.Regexp
	target  PatternTarget

	hashContent bool
}

// MatchAll returns criteria that accept every regular file and skip hashing.
func MatchAll() *Criteria {
	return &Criteria{
		includeHiddenFiles:   true,
		includeHiddenFolders: true,
		includeReadOnly:      true,
		includeSystem:        true,
		maxSize:              math.MaxUint64,
	}
}

func (c *Criteria) IncludeHiddenFiles() bool   { return c.includeHiddenFiles }
func (c *Criteria) IncludeHiddenFolders() bool { return c.includeHiddenFolders }
func (c *Criteria) IncludeReadOnly() bool      { return c.includeReadOnly }
func (c *Criteria) IncludeSystem() bool        { return c.includeSystem }
func (c *Criteria) MinSize() uint64            { return c.minSize }
func (c *Criteria) MaxSize() uint64            { return c.maxSize }
func (c *Criteria) TimeLimit() TimeLimit       { return c.timeLimit }
func (c *Criteria) Target() PatternTarget      { return c.target }
func (c *Criteria) HashContent() bool          { return c.hashContent }

// Pattern returns the source of the compiled pattern, empty for match-all.
func (c *Criteria) Pattern() string {
	if c.pattern == nil {
		return ""
	}
	return c.pattern.String()
}
