package mcpserver

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdiff/differ"
)

type compareInput struct {
	Old            specInput `json:"old"                       jsonschema:"The earlier version of the document"`
	New            specInput `json:"new"                       jsonschema:"The later version of the document"`
	BreakingOnly   bool      `json:"breaking_only,omitempty"   jsonschema:"Only return breaking operation changes"`
	IncludeDetails bool      `json:"include_details,omitempty" jsonschema:"Include field-level details for each operation"`
	DetailLimit    int       `json:"detail_limit,omitempty"    jsonschema:"Maximum details per operation when include_details is set"`
}

type compareDetail struct {
	Location   string `json:"location"`
	ChangeType string `json:"change_type"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	IsBreaking bool   `json:"is_breaking"`
}

type compareChange struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	IsBreaking  bool            `json:"is_breaking"`
	SummaryText string          `json:"summary_text"`
	Details     []compareDetail `json:"details,omitempty"`
	// MoreDetails counts details dropped by detail_limit
	MoreDetails int `json:"more_details,omitempty"`
}

type compareOutput struct {
	AddedCount    int             `json:"added_count"`
	UpdatedCount  int             `json:"updated_count"`
	DeletedCount  int             `json:"deleted_count"`
	BreakingCount int             `json:"breaking_count"`
	Changes       []compareChange `json:"changes,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
	Summary       string          `json:"summary"`
}

func (s *Server) handleCompare(ctx context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	report, err := s.compare(ctx, input.Old, input.New)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	limit := input.DetailLimit
	if limit <= 0 {
		limit = s.opts.DetailLimit
	}

	output := compareOutput{
		AddedCount:    report.Summary.AddedCount,
		UpdatedCount:  report.Summary.UpdatedCount,
		DeletedCount:  report.Summary.DeletedCount,
		BreakingCount: report.Summary.BreakingCount,
		Changes:       makeSlice[compareChange](len(report.Changes)),
		Warnings:      report.Warnings,
	}
	for _, c := range report.Changes {
		if input.BreakingOnly && !c.IsBreaking {
			continue
		}
		cc := compareChange{
			ID:          c.ID,
			Status:      string(c.Status),
			IsBreaking:  c.IsBreaking,
			SummaryText: c.SummaryText,
		}
		if input.IncludeDetails {
			details := c.Details
			if input.BreakingOnly {
				details = c.BreakingDetails()
			}
			if len(details) > limit {
				cc.MoreDetails = len(details) - limit
				details = details[:limit]
			}
			cc.Details = makeSlice[compareDetail](len(details))
			for _, d := range details {
				cc.Details = append(cc.Details, compareDetail{
					Location:   d.Location,
					ChangeType: string(d.ChangeType),
					OldValue:   d.OldValue.String(),
					NewValue:   d.NewValue.String(),
					IsBreaking: d.IsBreaking,
				})
			}
		}
		output.Changes = append(output.Changes, cc)
	}
	output.Summary = buildCompareSummary(report.Summary, len(output.Changes), input.BreakingOnly)

	return nil, output, nil
}

// compare resolves both inputs and runs the comparison.
func (s *Server) compare(ctx context.Context, oldIn, newIn specInput) (*differ.Report, error) {
	oldDoc, newDoc, err := s.resolvePair(ctx, oldIn, newIn)
	if err != nil {
		return nil, err
	}
	d := &differ.Differ{Policy: s.policy(), Logger: s.opts.Logger}
	return d.Compare(oldDoc, newDoc)
}

func buildCompareSummary(sum differ.Summary, shown int, breakingOnly bool) string {
	if sum.Total() == 0 {
		return "No operation changes detected."
	}

	summary := ""
	if sum.BreakingCount > 0 {
		summary = "Breaking changes detected. "
	}
	summary += formatCount(sum.Total(), "operation change") + " found"
	summary += " (" + strconv.Itoa(sum.AddedCount) + " added, " +
		strconv.Itoa(sum.UpdatedCount) + " updated, " +
		strconv.Itoa(sum.DeletedCount) + " deleted"
	if sum.BreakingCount > 0 {
		summary += "; " + strconv.Itoa(sum.BreakingCount) + " breaking"
	}
	summary += ")."
	if breakingOnly && shown < sum.Total() {
		summary += " Showing " + formatCount(shown, "breaking change") + "."
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
