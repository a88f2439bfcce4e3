package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filter"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	depth         int
	pattern       string
	matchPath     bool
	hash          bool
	hiddenFiles   bool
	hiddenFolders bool
	readOnly      bool
	system        bool
	minSize       string
	maxSize       string
	within        string
	olderThan     string
	from          string
	to            string
	sortBy        string
	desc          bool
	dedup         bool
	output        string
	format        string
	quiet         bool
}

func newSearchCommand(a *app) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <root>...",
		Short: "Find files matching a pattern and filters",
		Long: `Search walks every root concurrently and prints the matching files.

Flags that are not given fall back to the settings file. Ages accept a count
and a unit, for example "7days", "2 weeks" or "1year"; dates use YYYY-MM-DD
and both ends are inclusive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, f, args)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.depth, "depth", "d", 0, "levels to descend, 1 = roots only, 0 = unlimited")
	fl.StringVarP(&f.pattern, "pattern", "p", "", "regular expression the file must match")
	fl.BoolVar(&f.matchPath, "match-path", false, "match the pattern against the full path instead of the name")
	fl.BoolVar(&f.hash, "hash", false, "compute SHA-256 digests")
	fl.BoolVar(&f.hiddenFiles, "hidden-files", false, "include hidden files")
	fl.BoolVar(&f.hiddenFolders, "hidden-folders", false, "descend into hidden folders")
	fl.BoolVar(&f.readOnly, "readonly", false, "include read-only files")
	fl.BoolVar(&f.system, "system", false, "include system files")
	fl.StringVar(&f.minSize, "min-size", "", "smallest size, e.g. 10KB")
	fl.StringVar(&f.maxSize, "max-size", "", "largest size, e.g. 1GiB")
	fl.StringVar(&f.within, "within", "", "modified within this age")
	fl.StringVar(&f.olderThan, "older-than", "", "modified before this age")
	fl.StringVar(&f.from, "from", "", "modified on or after this date")
	fl.StringVar(&f.to, "to", "", "modified on or before this date")
	fl.StringVarP(&f.sortBy, "sort", "s", "path", "sort by name, size, time or path")
	fl.BoolVar(&f.desc, "desc", false, "sort in descending order")
	fl.BoolVar(&f.dedup, "dedup", false, "keep one file per digest (implies --hash)")
	fl.StringVarP(&f.output, "output", "o", "", "export results to this file")
	fl.StringVar(&f.format, "format", "", "export format, json or yaml (default from extension)")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "do not list matches")

	cmd.MarkFlagsMutuallyExclusive("within", "older-than", "from")
	cmd.MarkFlagsMutuallyExclusive("within", "older-than", "to")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func runSearch(cmd *cobra.Command, a *app, f *searchFlags, roots []string) error {
	out := cmd.OutOrStdout()
	changed := cmd.Flags().Changed

	builder, err := a.settings.Builder(time.Now())
	if err != nil {
		return err
	}
	if err := applySearchFlags(builder, changed, f, a); err != nil {
		return err
	}
	criteria, err := builder.Build()
	if err != nil {
		return err
	}

	depth := a.settings.SearchDepth
	if changed("depth") {
		depth = f.depth
	}

	sortField, err := results.ParseSortField(f.sortBy)
	if err != nil {
		return err
	}

	res, walkErr := a.searcher().Search(cmd.Context(), roots, depth, criteria)
	if walkErr != nil && res == nil {
		return walkErr
	}

	records := res.Records
	if f.dedup {
		records = results.Dedup(records)
	}
	direction := options.SortAsc
	if f.desc {
		direction = options.SortDesc
	}
	records = results.Sort(records, options.SortCriteria{Field: sortField, Direction: direction})

	if !f.quiet {
		printRecords(out, records)
	}
	printWalkSummary(out, res, len(records))

	if f.output != "" {
		format := results.FormatFromPath(f.output)
		if f.format != "" {
			if format, err = results.ParseFormat(f.format); err != nil {
				return err
			}
		}
		if err := results.ExportFile(f.output, records, format); err != nil {
			return fmt.Errorf("export results: %w", err)
		}
		fmt.Fprintf(out, "Exported %d records to %s\n", len(records), f.output)
	}

	// A cancelled walk still prints and exports what it found.
	return walkErr
}

func applySearchFlags(b *filter.Builder, changed func(string) bool, f *searchFlags, a *app) error {
	if changed("pattern") || changed("match-path") {
		target := filter.TargetName
		if f.matchPath || (!changed("match-path") && a.settings.RegexContainsPath) {
			target = filter.TargetPath
		}
		pattern := a.settings.FilePattern
		if changed("pattern") {
			pattern = f.pattern
		}
		b.Pattern(pattern, target)
	}
	if changed("hash") || f.dedup {
		b.HashContent(f.hash || f.dedup)
	}
	if changed("hidden-files") {
		b.IncludeHiddenFiles(f.hiddenFiles)
	}
	if changed("hidden-folders") {
		b.IncludeHiddenFolders(f.hiddenFolders)
	}
	if changed("readonly") {
		b.IncludeReadOnly(f.readOnly)
	}
	if changed("system") {
		b.IncludeSystem(f.system)
	}

	if changed("min-size") || changed("max-size") {
		minSize, maxSize := a.settings.MinFileSize, a.settings.MaxFileSize
		var err error
		if changed("min-size") {
			if minSize, err = humanize.ParseBytes(f.minSize); err != nil {
				return common.NewConfigError("min-size", err)
			}
		}
		if changed("max-size") {
			if maxSize, err = humanize.ParseBytes(f.maxSize); err != nil {
				return common.NewConfigError("max-size", err)
			}
		}
		b.SizeRange(minSize, maxSize)
	}

	switch {
	case changed("within"):
		d, err := parseAge(f.within)
		if err != nil {
			return err
		}
		b.RelativeTime(d, filter.PolarityNewer)
	case changed("older-than"):
		d, err := parseAge(f.olderThan)
		if err != nil {
			return err
		}
		b.RelativeTime(d, filter.PolarityOlder)
	case changed("from"):
		from, err := parseDate("from", f.from)
		if err != nil {
			return err
		}
		to, err := parseDate("to", f.to)
		if err != nil {
			return err
		}
		b.AbsoluteDates(from[0], from[1], from[2], to[0], to[1], to[2])
	}
	return nil
}

// parseAge reads "<count><unit>" with optional whitespace, e.g. "30 days".
func parseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	split := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if split <= 0 {
		return 0, common.NewConfigError("age", fmt.Errorf("expected <count><unit>, got %q", s))
	}
	n, err := strconv.ParseUint(s[:split], 10, 64)
	if err != nil {
		return 0, common.NewConfigError("age", err)
	}
	return filter.RelativeUnits(n, s[split:])
}

// parseDate splits YYYY-MM-DD without validating the calendar; the builder does that.
func parseDate(field, s string) ([3]int, error) {
	var ymd [3]int
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return ymd, common.NewConfigError(field, fmt.Errorf("%w: %q", common.ErrInvalidDate, s))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return ymd, common.NewConfigError(field, fmt.Errorf("%w: %q", common.ErrInvalidDate, s))
		}
		ymd[i] = v
	}
	return ymd, nil
}
