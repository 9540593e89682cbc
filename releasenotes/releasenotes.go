package releasenotes

import (
	"bytes"
	"embed"
	"io"
	"text/template"
	"time"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/oaserrors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

// DateLayout is the format of the date in the title line.
const DateLayout = "2006-01-02"

// notesData is the template input.
type notesData struct {
	Date     string
	Total    int
	Summary  differ.Summary
	Breaking []differ.Change
	Added    []differ.Change
	Improved []differ.Change
	Deleted  []differ.Change
}

func newNotesData(report *differ.Report, date time.Time) notesData {
	data := notesData{
		Date:    date.Format(DateLayout),
		Total:   len(report.Changes),
		Summary: report.Summary,
	}
	for _, c := range report.Changes {
		if c.IsBreaking {
			data.Breaking = append(data.Breaking, c)
		}
		switch c.Status {
		case differ.StatusAdded:
			data.Added = append(data.Added, c)
		case differ.StatusUpdated:
			if !c.IsBreaking {
				data.Improved = append(data.Improved, c)
			}
		case differ.StatusDeleted:
			data.Deleted = append(data.Deleted, c)
		}
	}
	return data
}

// Write renders report as Markdown release notes to w.
func Write(w io.Writer, report *differ.Report, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return err
	}
	if report == nil {
		return &oaserrors.ConfigError{Option: "report", Message: "report is required"}
	}
	return templates.ExecuteTemplate(w, "release_notes.md.tmpl", newNotesData(report, cfg.date))
}

// Generate renders report as Markdown release notes.
//
// Example:
//
//	notes, err := releasenotes.Generate(report,
//	    releasenotes.WithDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
//	)
func Generate(report *differ.Report, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, report, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
