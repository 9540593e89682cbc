package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/specdiff/linediff"
)

func (a *app) fullDiffCmd() *cobra.Command {
	var format, output string
	var changedOnly bool
	cmd := &cobra.Command{
		Use:   "full-diff <old> <new>",
		Short: "Compare the raw text of two documents line by line",
		Long: `Full-diff pairs the lines of both documents by position and classifies each pair
as unchanged, added, deleted, or modified. Lines are not aligned, so an
insertion shifts every following pair. The documents are not parsed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format, FormatText, FormatJSON, FormatYAML); err != nil {
				return err
			}
			oldData, newData, err := a.loadRaw(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			res := linediff.Compare(string(oldData), string(newData))

			return a.writeOutput(output, args, func(w io.Writer) error {
				if format == FormatText {
					return writeTextLineDiff(w, res, changedOnly)
				}
				if changedOnly {
					res.Lines = changedLines(res.Lines)
				}
				return WriteStructured(w, res, format)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, json, or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the diff to a file instead of stdout")
	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "omit unchanged lines")
	addFetchFlags(cmd)
	return cmd
}

func changedLines(lines []linediff.Line) []linediff.Line {
	out := make([]linediff.Line, 0, len(lines))
	for _, l := range lines {
		if l.Status != linediff.StatusUnchanged {
			out = append(out, l)
		}
	}
	return out
}
