package filter

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
)

const day = 24 * time.Hour

// unitDurations mirrors the units the settings file and CLI accept.
// Months are 30 days and years 365 days.
var unitDurations = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    day,
	"week":   7 * day,
	"month":  30 * day,
	"year":   365 * day,
}

// RelativeUnits converts n units ("day", "weeks", ...) into a duration.
func RelativeUnits(n uint64, unit string) (time.Duration, error) {
	unit = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), "s")
	d, ok := unitDurations[unit]
	if !ok {
		return 0, common.NewConfigError("time_unit", fmt.Errorf("%w: %q", common.ErrUnknownUnit, unit))
	}
	if n > uint64(math.MaxInt64/int64(d)) {
		return 0, common.NewConfigError("time_unit", fmt.Errorf("%d %ss overflows a duration", n, unit))
	}
	return time.Duration(n) * d, nil
}

// Builder assembles a Criteria. Every setter records problems instead of
// failing immediately; Build reports all of them at once.
type Builder struct {
	criteria Criteria
	pattern  string
	relative *relativeLimit
	clock    func() time.Time
	errs     []error
}

type relativeLimit struct {
	duration time.Duration
	polarity Polarity
}

// NewBuilder starts from criteria that include every file, no time limit and
// no hashing.
func NewBuilder() *Builder {
	return &Builder{
		criteria: *MatchAll(),
		clock:    time.Now,
	}
}

// WithClock replaces the wall clock used to resolve relative time limits.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

func (b *Builder) IncludeHiddenFiles(v bool) *Builder {
	b.criteria.includeHiddenFiles = v
	return b
}

func (b *Builder) IncludeHiddenFolders(v bool) *Builder {
	b.criteria.includeHiddenFolders = v
	return b
}

func (b *Builder) IncludeReadOnly(v bool) *Builder {
	b.criteria.includeReadOnly = v
	return b
}

func (b *Builder) IncludeSystem(v bool) *Builder {
	b.criteria.includeSystem = v
	return b
}

// SizeRange bounds file sizes in bytes, both ends inclusive.
func (b *Builder) SizeRange(minSize, maxSize uint64) *Builder {
	if minSize > maxSize {
		b.errs = append(b.errs, common.NewConfigError("size",
			fmt.Errorf("%w: %d > %d", common.ErrInvalidRange, minSize, maxSize)))
		return b
	}
	b.criteria.minSize = minSize
	b.criteria.maxSize = maxSize
	return b
}

// HashContent enables SHA-256 digests for matched files.
func (b *Builder) HashContent(v bool) *Builder {
	b.criteria.hashContent = v
	return b
}

// Pattern sets the regular expression and what it is matched against. An empty
// or blank pattern matches everything.
func (b *Builder) Pattern(expr string, target PatternTarget) *Builder {
	b.pattern = expr
	b.criteria.target = target
	return b
}

// NoTimeLimit clears any time constraint.
func (b *Builder) NoTimeLimit() *Builder {
	b.relative = nil
	b.criteria.timeLimit = TimeLimit{Kind: TimeLimitNone}
	return b
}

// RelativeTime keeps files modified within (PolarityNewer) or before
// (PolarityOlder) the last d. The polarity must be given explicitly.
func (b *Builder) RelativeTime(d time.Duration, polarity Polarity) *Builder {
	if d < 0 {
		b.errs = append(b.errs, common.NewConfigError("relative_duration", common.ErrNegativeDuration))
		return b
	}
	if polarity != PolarityNewer && polarity != PolarityOlder {
		b.errs = append(b.errs, common.NewConfigError("relative_polarity", common.ErrPolarityRequired))
		return b
	}
	b.relative = &relativeLimit{duration: d, polarity: polarity}
	b.criteria.timeLimit = TimeLimit{Kind: TimeLimitRelative, Duration: d, Polarity: polarity}
	return b
}

// AbsoluteDates keeps files modified from the start of the minimum calendar day
// through the end of the maximum calendar day, in UTC.
func (b *Builder) AbsoluteDates(minYear, minMonth, minDay, maxYear, maxMonth, maxDay int) *Builder {
	from, err := calendarDate(minYear, minMonth, minDay)
	if err != nil {
		b.errs = append(b.errs, common.NewConfigError("absolute_min_date", err))
		return b
	}
	to, err := calendarDate(maxYear, maxMonth, maxDay)
	if err != nil {
		b.errs = append(b.errs, common.NewConfigError("absolute_max_date", err))
		return b
	}
	if from.After(to) {
		b.errs = append(b.errs, common.NewConfigError("absolute_range",
			fmt.Errorf("%w: %s > %s", common.ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))))
		return b
	}
	b.setAbsolute(from.Unix(), to.Add(day).Unix())
	return b
}

// AbsoluteTimestamps keeps files modified in [minTs, maxTs], Unix seconds.
func (b *Builder) AbsoluteTimestamps(minTs, maxTs uint64) *Builder {
	if minTs > maxTs {
		b.errs = append(b.errs, common.NewConfigError("absolute_range",
			fmt.Errorf("%w: %d > %d", common.ErrInvalidRange, minTs, maxTs)))
		return b
	}
	b.setAbsolute(clampUnix(minTs), clampUnix(maxTs)+1)
	return b
}

func (b *Builder) setAbsolute(minTs, maxExclusive int64) {
	b.relative = nil
	b.criteria.timeLimit = TimeLimit{Kind: TimeLimitAbsolute, Min: minTs, MaxExclusive: maxExclusive}
}

// Build validates the accumulated settings and returns an immutable Criteria.
// All failures are ConfigErrors.
func (b *Builder) Build() (*Criteria, error) {
	errs := append([]error(nil), b.errs...)

	c := b.criteria
	if strings.TrimSpace(b.pattern) != "" {
		re, err := regexp.Compile(b.pattern)
		if err != nil {
			errs = append(errs, common.NewConfigError("pattern", fmt.Errorf("%w: %v", common.ErrInvalidPattern, err)))
		}
		c.pattern = re
	} else {
		c.pattern = nil
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if b.relative != nil {
		c.timeLimit.Cutoff = b.clock().Add(-b.relative.duration)
	}

	return &c, nil
}

// clampUnix keeps maxExclusive = clampUnix(max)+1 from overflowing.
func clampUnix(ts uint64) int64 {
	if ts >= math.MaxInt64 {
		return math.MaxInt64 - 1
	}
	return int64(ts)
}

func calendarDate(year, month, dayOfMonth int) (time.Time, error) {
	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != dayOfMonth {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", common.ErrInvalidDate, year, month, dayOfMonth)
	}
	return t, nil
}
