package cli

import (
	"fmt"

	internal "github.com/ZanzyTHEbar/file-seeker/seeker"
	"github.com/ZanzyTHEbar/file-seeker/seeker/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSettingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or initialise the settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.settings); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = internal.DefaultConfigFile
			}
			defaults := config.DefaultSettings()
			if err := config.SaveSettings(path, &defaults); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
			return nil
		},
	})

	return cmd
}
