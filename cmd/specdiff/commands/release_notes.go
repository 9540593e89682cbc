package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/specdiff/releasenotes"
)

func (a *app) releaseNotesCmd() *cobra.Command {
	var date, output string
	cmd := &cobra.Command{
		Use:     "release-notes <old> <new>",
		Aliases: []string{"notes"},
		Short:   "Generate Markdown release notes from two documents",
		Example: `  specdiff release-notes api-v1.yaml api-v2.yaml
  specdiff release-notes --date 2024-06-01 -o CHANGES.md git:v1.0.0:openapi.yaml openapi.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []releasenotes.Option
			if date != "" {
				opts = append(opts, releasenotes.WithDateString(date))
			}
			report, err := a.compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.writeOutput(output, args, func(w io.Writer) error {
				return releasenotes.Write(w, report, opts...)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "release date for the heading, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the notes to a file instead of stdout")
	addFetchFlags(cmd)
	return cmd
}
