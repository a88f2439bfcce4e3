package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printRecords lists records with the positions selections refer to.
func printRecords(w io.Writer, records []types.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range records {
		hash := ""
		if r.Hash != "" {
			hash = r.Hash[:min(12, len(r.Hash))]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i,
			humanize.IBytes(r.Size),
			r.ModTime().Local().Format(time.DateTime),
			hash,
			r.Path)
	}
	tw.Flush()
}

func printWalkSummary(w io.Writer, res *types.WalkResult, shown int) {
	stats := res.Stats
	fmt.Fprintf(w, "%s %s in %s (%s dirs, %s files seen, %s)\n",
		color.GreenString("Found"),
		plural(shown, "file"),
		stats.Duration.Round(time.Millisecond),
		humanize.Comma(stats.DirsProcessed),
		humanize.Comma(stats.FilesSeen),
		warningCount(len(res.Warnings)))
}

func warningCount(n int) string {
	if n == 0 {
		return "no warnings"
	}
	return color.YellowString(plural(n, "warning"))
}

func printOperationResult(w io.Writer, res *types.OperationResult) {
	summary := res.Summary()
	switch {
	case res.AllFailed():
		fmt.Fprintln(w, color.RedString(summary))
	case res.Failed() > 0:
		fmt.Fprintln(w, color.YellowString(summary))
	default:
		fmt.Fprintln(w, color.GreenString(summary))
	}
	for _, err := range res.Errors {
		fmt.Fprintf(w, "  %s %v\n", color.RedString("x"), err)
	}
}

func printSummary(w io.Writer, s results.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Files:\t%s\n", humanize.Comma(int64(s.Count)))
	fmt.Fprintf(tw, "Total size:\t%s\n", humanize.IBytes(s.TotalBytes))
	if s.Count > 0 {
		fmt.Fprintf(tw, "Mean size:\t%s\n", humanize.IBytes(uint64(s.MeanSize)))
		fmt.Fprintf(tw, "Median size:\t%s\n", humanize.IBytes(uint64(s.MedianSize)))
		fmt.Fprintf(tw, "Std deviation:\t%s\n", humanize.IBytes(uint64(s.StdDevSize)))
		fmt.Fprintf(tw, "Oldest:\t%s (%s)\n", s.Oldest.Local().Format(time.DateTime), humanize.Time(s.Oldest))
		fmt.Fprintf(tw, "Newest:\t%s (%s)\n", s.Newest.Local().Format(time.DateTime), humanize.Time(s.Newest))
	}
	fmt.Fprintf(tw, "Duplicate groups:\t%d\n", s.DuplicateGroups)
	if s.DuplicateGroups > 0 {
		fmt.Fprintf(tw, "Reclaimable:\t%s\n", color.YellowString(humanize.IBytes(s.DuplicateBytes)))
	}
	tw.Flush()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
