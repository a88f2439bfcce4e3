package cli

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
	"github.com/ZanzyTHEbar/file-seeker/seeker/results"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// errAborted is returned when the user declines a confirmation prompt.
var errAborted = errors.New("aborted by user")

// selectFlags narrows an imported results file by record position.
type selectFlags struct {
	include string
	exclude string
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.include, "select", "", "positions to act on, e.g. 0,2,5-9 (default all)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "positions to leave out, same syntax as --select")
}

// load imports path and keeps the records chosen by --select minus --exclude.
func (f *selectFlags) load(path string) ([]types.FileRecord, error) {
	records, err := results.ImportFile(path)
	if err != nil {
		return nil, err
	}
	if f.include == "" && f.exclude == "" {
		return records, nil
	}

	sel := results.SelectAll(len(records))
	if f.include != "" {
		if sel, err = results.ParseSelection(f.include); err != nil {
			return nil, err
		}
	}
	if f.exclude != "" {
		excluded, err := results.ParseSelection(f.exclude)
		if err != nil {
			return nil, err
		}
		sel = sel.Intersect(excluded.Invert(len(records)))
	}
	return sel.Apply(records), nil
}

func newCopyCommand(a *app) *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "copy <results-file> <destination>",
		Short: "Copy exported results into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			res, err := a.searcher().Copy(cmd.Context(), records, nil, args[1])
			if res != nil {
				printOperationResult(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	sel.register(cmd)
	return cmd
}

func newMoveCommand(a *app) *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "move <results-file> <destination>",
		Short: "Move exported results into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			res, err := a.searcher().Move(cmd.Context(), records, nil, args[1])
			if res != nil {
				printOperationResult(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	sel.register(cmd)
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var (
		sel selectFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "delete <results-file>",
		Short: "Send exported results to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			if !yes {
				if err := confirm(fmt.Sprintf("Move %s to the trash", plural(len(records), "file"))); err != nil {
					return err
				}
			}
			res, err := a.searcher().Delete(cmd.Context(), records, nil)
			if res != nil {
				printOperationResult(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newRemapCommand(a *app) *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "remap <results-file> <source> <destination>",
		Short: "Copy results under source to destination, keeping their layout",
		Long: `Remap copies every selected record found below source to the same
relative location below destination, creating folders as needed. Records
outside source are skipped.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sel.load(args[0])
			if err != nil {
				return err
			}
			res, err := a.searcher().Remap(cmd.Context(), records, nil, args[1], args[2])
			if res != nil {
				printOperationResult(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	sel.register(cmd)
	return cmd
}

func confirm(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return errAborted
		}
		return err
	}
	return nil
}
