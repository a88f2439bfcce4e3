package cli

import (
	"os"

	internal "github.com/ZanzyTHEbar/file-seeker/seeker"
	"github.com/ZanzyTHEbar/file-seeker/seeker/config"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/fileops"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/options"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// app carries what every subcommand needs once persistent flags are parsed.
type app struct {
	configPath string
	verbose    bool
	workers    int

	settings *config.Settings
	logger   zerolog.Logger
	trasher  fileops.Trasher
}

// NewRootCommand creates and returns the root cobra command for seeker
func NewRootCommand() *cobra.Command {
	return newRootCommand(nil)
}

// newRootCommand lets tests substitute the trash implementation.
func newRootCommand(trasher fileops.Trasher) *cobra.Command {
	a := &app{trasher: trasher}

	cmd := &cobra.Command{
		Use:   internal.DefaultAppName,
		Short: "Concurrent multi-criteria file search",
		Long: `seeker walks one or more directory trees in parallel and lists the files
matching a name or path pattern plus size, age and attribute filters.

Search results can be exported, viewed as a folder tree or summary, and
copied, moved, trashed or remapped in bulk.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default "+internal.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log per-file activity")
	cmd.PersistentFlags().IntVar(&a.workers, "workers", 0, "concurrent workers (0 = auto)")

	cmd.AddCommand(newSearchCommand(a))
	cmd.AddCommand(newTreeCommand(a))
	cmd.AddCommand(newSummaryCommand(a))
	cmd.AddCommand(newCopyCommand(a))
	cmd.AddCommand(newMoveCommand(a))
	cmd.AddCommand(newDeleteCommand(a))
	cmd.AddCommand(newRemapCommand(a))
	cmd.AddCommand(newSettingsCommand(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.logger = internal.GetLogger().Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: !isTerminal(os.Stderr)}).Level(level)

	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.workers > 0 {
		settings.Workers = a.workers
	}
	a.settings = settings
	return nil
}

func (a *app) searcher() *filesystem.Searcher {
	traversal := options.DefaultTraversalOptions()
	traversal.Logger = a.logger
	if a.settings.Workers > 0 {
		traversal.WorkerCount = a.settings.Workers
	}

	batch := options.DefaultBatchOptions()
	batch.Logger = a.logger
	if a.settings.Workers > 0 {
		batch.WorkerCount = a.settings.Workers
	}

	return filesystem.NewSearcher(traversal, batch, a.trasher)
}
