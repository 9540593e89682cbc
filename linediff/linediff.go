// Package linediff compares two texts line by line at fixed indices.
//
// Line i of the old text is paired with line i of the new text; there is no
// alignment search, so an inserted line shows every following line as
// modified. This matches a side-by-side view of the raw inputs.
package linediff

import "strings"

// Status classifies one line pair.
type Status string

const (
	// StatusUnchanged means both lines are equal
	StatusUnchanged Status = "unchanged"
	// StatusAdded means the old line is empty and the new one is not
	StatusAdded Status = "added"
	// StatusDeleted means the new line is empty and the old one is not
	StatusDeleted Status = "deleted"
	// StatusModified means both lines are non-empty and differ
	StatusModified Status = "modified"
)

// Line is one row of the comparison.
type Line struct {
	// Number is 1-based
	Number  int    `json:"line_num" yaml:"line_num"`
	OldLine string `json:"old_line" yaml:"old_line"`
	NewLine string `json:"new_line" yaml:"new_line"`
	Status  Status `json:"status" yaml:"status"`
}

// Stats counts lines by status.
type Stats struct {
	Additions     int `json:"additions" yaml:"additions"`
	Deletions     int `json:"deletions" yaml:"deletions"`
	Modifications int `json:"modifications" yaml:"modifications"`
	Unchanged     int `json:"unchanged" yaml:"unchanged"`
}

// Result is the full comparison.
type Result struct {
	Lines []Line `json:"lines" yaml:"lines"`
	Stats Stats  `json:"stats" yaml:"stats"`
}

// HasChanges reports whether any line differs.
func (r Result) HasChanges() bool {
	return r.Stats.Additions+r.Stats.Deletions+r.Stats.Modifications > 0
}

// Compare pairs the lines of oldText and newText by index.
// Missing lines on the shorter side compare as empty strings.
func Compare(oldText, newText string) Result {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")
	n := max(len(oldLines), len(newLines))

	res := Result{Lines: make([]Line, 0, n)}
	for i := range n {
		line := Line{Number: i + 1, OldLine: lineAt(oldLines, i), NewLine: lineAt(newLines, i)}
		switch {
		case line.OldLine == line.NewLine:
			line.Status = StatusUnchanged
			res.Stats.Unchanged++
		case line.OldLine == "":
			line.Status = StatusAdded
			res.Stats.Additions++
		case line.NewLine == "":
			line.Status = StatusDeleted
			res.Stats.Deletions++
		default:
			line.Status = StatusModified
			res.Stats.Modifications++
		}
		res.Lines = append(res.Lines, line)
	}
	return res
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
