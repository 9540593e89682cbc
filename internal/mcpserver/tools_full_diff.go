package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdiff/linediff"
	"github.com/erraggy/specdiff/oaserrors"
)

type fullDiffInput struct {
	Old         specInput `json:"old"                    jsonschema:"The earlier version of the document"`
	New         specInput `json:"new"                    jsonschema:"The later version of the document"`
	ChangedOnly bool      `json:"changed_only,omitempty" jsonschema:"Omit unchanged lines"`
}

type fullDiffLine struct {
	Number  int    `json:"line_num"`
	OldLine string `json:"old_line"`
	NewLine string `json:"new_line"`
	Status  string `json:"status"`
}

type fullDiffOutput struct {
	Additions     int            `json:"additions"`
	Deletions     int            `json:"deletions"`
	Modifications int            `json:"modifications"`
	Unchanged     int            `json:"unchanged"`
	Lines         []fullDiffLine `json:"lines,omitempty"`
}

func (s *Server) handleFullDiff(ctx context.Context, _ *mcp.CallToolRequest, input fullDiffInput) (*mcp.CallToolResult, fullDiffOutput, error) {
	_, oldData, err := s.load(ctx, input.Old, oaserrors.SideOld)
	if err != nil {
		return errResult(err), fullDiffOutput{}, nil
	}
	_, newData, err := s.load(ctx, input.New, oaserrors.SideNew)
	if err != nil {
		return errResult(err), fullDiffOutput{}, nil
	}

	res := linediff.Compare(string(oldData), string(newData))
	output := fullDiffOutput{
		Additions:     res.Stats.Additions,
		Deletions:     res.Stats.Deletions,
		Modifications: res.Stats.Modifications,
		Unchanged:     res.Stats.Unchanged,
		Lines:         makeSlice[fullDiffLine](len(res.Lines)),
	}
	for _, l := range res.Lines {
		if input.ChangedOnly && l.Status == linediff.StatusUnchanged {
			continue
		}
		output.Lines = append(output.Lines, fullDiffLine{
			Number:  l.Number,
			OldLine: l.OldLine,
			NewLine: l.NewLine,
			Status:  string(l.Status),
		})
	}
	return nil, output, nil
}
