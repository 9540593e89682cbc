package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/specdiff"
)

func versionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the specdiff version",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				Writef(cmd.OutOrStdout(), "%s\n", specdiff.BuildInfo())
				return
			}
			Writef(cmd.OutOrStdout(), "specdiff v%s\n", specdiff.Version())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print commit, build time, and Go version too")
	return cmd
}
