package commands

import (
	"io"

	"github.com/spf13/cobra"
)

type compareFlags struct {
	format         string
	output         string
	failOnBreaking bool
}

func (a *app) compareCmd() *cobra.Command {
	flags := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare <old> <new>",
		Short: "Report operation-level changes between two documents",
		Long: `Compare aligns the operations of the old and new documents by method and path and
reports each one that was added, deleted, or updated, with field-level details
and a breaking flag decided by the configured policy.`,
		Example: `  specdiff compare api-v1.yaml api-v2.yaml
  specdiff compare -f text git:HEAD~1:openapi.yaml openapi.yaml
  specdiff compare --fail-on-breaking -o report.json old.yaml https://example.com/openapi.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(flags.format, FormatJSON, FormatYAML, FormatText); err != nil {
				return err
			}
			report, err := a.compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			err = a.writeOutput(flags.output, args, func(w io.Writer) error {
				if flags.format == FormatText {
					return writeTextReport(w, report)
				}
				return WriteStructured(w, report, flags.format)
			})
			if err != nil {
				return err
			}
			if flags.failOnBreaking && report.HasBreakingChanges() {
				return errBreaking
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatJSON, "output format: json, yaml, or text")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.failOnBreaking, "fail-on-breaking", false, "exit with status 2 when any change is breaking")
	addFetchFlags(cmd)
	return cmd
}

// addFetchFlags adds the URL fetch overrides shared by commands that load documents.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("fetch-timeout", 0, "timeout for each URL fetch attempt (default from config: 30s)")
	cmd.Flags().Uint64("fetch-retries", 0, "retries for URL fetches after the first attempt (default from config: 2)")
}
