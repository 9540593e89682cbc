package commands

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/linediff"
)

var titleCaser = cases.Title(language.English)

// textWriter records the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) heading(title string, underline string) {
	t.printf("%s\n%s\n", title, strings.Repeat(underline, len(title)))
}

// writeTextReport renders a report for terminals: a summary, then one
// section per status. Breaking operations and details are marked with "!".
func writeTextReport(w io.Writer, r *differ.Report) error {
	t := &textWriter{w: w}
	t.heading("OpenAPI Operation Diff", "=")
	t.printf("\n")

	s := r.Summary
	t.printf("Total changes: %d (added %d, updated %d, deleted %d)\n",
		s.Total(), s.AddedCount, s.UpdatedCount, s.DeletedCount)
	t.printf("Breaking changes: %d\n", s.BreakingCount)
	if s.Total() == 0 {
		t.printf("\nNo operation changes.\n")
		return t.err
	}

	for _, status := range []differ.Status{differ.StatusAdded, differ.StatusUpdated, differ.StatusDeleted} {
		var changes []differ.Change
		for _, c := range r.Changes {
			if c.Status == status {
				changes = append(changes, c)
			}
		}
		if len(changes) == 0 {
			continue
		}

		t.printf("\n")
		t.heading(fmt.Sprintf("%s (%d)", titleCaser.String(string(status)), len(changes)), "-")
		for _, c := range changes {
			t.printf("%s %s %s: %s\n", breakingMark(c.IsBreaking), c.Method, c.Path, c.SummaryText)
			for _, d := range c.Details {
				t.printf("    %s %s %s: %s -> %s\n",
					breakingMark(d.IsBreaking), d.ChangeType, d.Location, d.OldValue.String(), d.NewValue.String())
			}
		}
	}
	return t.err
}

func breakingMark(breaking bool) string {
	if breaking {
		return "!"
	}
	return " "
}

// linePrefix marks each line status in text full-diff output.
var linePrefix = map[linediff.Status]string{
	linediff.StatusUnchanged: " ",
	linediff.StatusAdded:     "+",
	linediff.StatusDeleted:   "-",
	linediff.StatusModified:  "~",
}

// writeTextLineDiff renders a line diff, one line pair per row. Modified
// lines show the old text, then the new text on the following row.
func writeTextLineDiff(w io.Writer, res linediff.Result, changedOnly bool) error {
	t := &textWriter{w: w}
	width := len(fmt.Sprint(len(res.Lines)))
	for _, l := range res.Lines {
		if changedOnly && l.Status == linediff.StatusUnchanged {
			continue
		}
		switch l.Status {
		case linediff.StatusAdded:
			t.printf("%*d %s %s\n", width, l.Number, linePrefix[l.Status], l.NewLine)
		case linediff.StatusModified:
			t.printf("%*d %s %s\n", width, l.Number, linePrefix[l.Status], l.OldLine)
			t.printf("%*s %s %s\n", width, "", linePrefix[l.Status], l.NewLine)
		default:
			t.printf("%*d %s %s\n", width, l.Number, linePrefix[l.Status], l.OldLine)
		}
	}
	st := res.Stats
	t.printf("\n%d additions, %d deletions, %d modifications, %d unchanged\n",
		st.Additions, st.Deletions, st.Modifications, st.Unchanged)
	return t.err
}
