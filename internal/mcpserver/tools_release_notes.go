package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdiff/releasenotes"
)

type releaseNotesInput struct {
	Old  specInput `json:"old"            jsonschema:"The earlier version of the document"`
	New  specInput `json:"new"            jsonschema:"The later version of the document"`
	Date string    `json:"date,omitempty" jsonschema:"Release date for the heading, YYYY-MM-DD. Defaults to today"`
}

type releaseNotesOutput struct {
	Markdown      string `json:"markdown"`
	TotalChanges  int    `json:"total_changes"`
	BreakingCount int    `json:"breaking_count"`
}

func (s *Server) handleReleaseNotes(ctx context.Context, _ *mcp.CallToolRequest, input releaseNotesInput) (*mcp.CallToolResult, releaseNotesOutput, error) {
	var opts []releasenotes.Option
	if input.Date != "" {
		opts = append(opts, releasenotes.WithDateString(input.Date))
	}

	report, err := s.compare(ctx, input.Old, input.New)
	if err != nil {
		return errResult(err), releaseNotesOutput{}, nil
	}
	notes, err := releasenotes.Generate(report, opts...)
	if err != nil {
		return errResult(err), releaseNotesOutput{}, nil
	}

	return nil, releaseNotesOutput{
		Markdown:      notes,
		TotalChanges:  report.Summary.Total(),
		BreakingCount: report.Summary.BreakingCount,
	}, nil
}
