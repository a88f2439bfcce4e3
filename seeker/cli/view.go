package cli

import (
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/spf13/cobra"
)

func newTreeCommand(a *app) *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "tree <results-file>",
		Short: "Show exported results as a folder tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			return a.searcher().Tree(records).Render(cmd.OutOrStdout())
		},
	}
	sel.register(cmd)
	return cmd
}

func newSummaryCommand(_ *app) *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "summary <results-file>",
		Short: "Show size, age and duplicate statistics for exported results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), results.Summarize(records))
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}
