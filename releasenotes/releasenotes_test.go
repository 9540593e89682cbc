package releasenotes

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/oaserrors"
)

var releaseDate = time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)

func sampleReport() *differ.Report {
	changes := []differ.Change{
		{ID: "GET:/pets", Path: "/pets", Method: "GET", Status: differ.StatusUpdated, IsBreaking: true, SummaryText: "Type mismatch at responses.200.content.application/json.schema.type"},
		{ID: "POST:/pets", Path: "/pets", Method: "POST", Status: differ.StatusUpdated, SummaryText: "Item added at responses.201"},
		{ID: "DELETE:/pets/{id}", Path: "/pets/{id}", Method: "DELETE", Status: differ.StatusDeleted, IsBreaking: true, SummaryText: "Endpoint deleted"},
		{ID: "PATCH:/pets/{id}", Path: "/pets/{id}", Method: "PATCH", Status: differ.StatusAdded, SummaryText: "Endpoint added"},
	}
	return &differ.Report{Summary: differ.Summarize(changes), Changes: changes}
}

func TestGenerate(t *testing.T) {
	notes, err := Generate(sampleReport(), WithDate(releaseDate))
	require.NoError(t, err)

	want := `# Release Notes - 2024-05-01

## 📊 Summary
- Total Changes: 4
- 🚀 Added: 1
- 🛠 Updated: 2
- 🗑 Deleted: 1
- ⚠️ Breaking: 2

## ⚠️ Breaking Changes
- **GET /pets**: Type mismatch at responses.200.content.application/json.schema.type
- **DELETE /pets/{id}**: Endpoint deleted

## 🚀 New Features
- **PATCH /pets/{id}**: New endpoint added

## 🛠 Improvements
- **POST /pets**: Item added at responses.201

## 🗑 Deprecations
- **DELETE /pets/{id}**: Endpoint removed
`
	assert.Equal(t, want, notes)
}

func TestGenerateOmitsEmptySections(t *testing.T) {
	tests := []struct {
		name    string
		report  *differ.Report
		absent  []string
		present []string
	}{
		{
			name:   "no changes",
			report: &differ.Report{Changes: []differ.Change{}},
			absent: []string{"Breaking Changes", "New Features", "Improvements", "Deprecations"},
		},
		{
			name: "only breaking updates",
			report: &differ.Report{Changes: []differ.Change{
				{Path: "/a", Method: "GET", Status: differ.StatusUpdated, IsBreaking: true, SummaryText: "x"},
			}},
			absent:  []string{"Improvements", "New Features"},
			present: []string{"## ⚠️ Breaking Changes\n- **GET /a**: x\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := Generate(tt.report, WithDate(releaseDate))
			require.NoError(t, err)
			for _, s := range tt.absent {
				assert.NotContains(t, notes, s)
			}
			for _, s := range tt.present {
				assert.Contains(t, notes, s)
			}
			assert.True(t, strings.HasPrefix(notes, "# Release Notes - 2024-05-01\n"))
		})
	}
}

func TestOptions(t *testing.T) {
	notes, err := Generate(sampleReport(), WithDateString("2023-12-31"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(notes, "# Release Notes - 2023-12-31\n"))

	_, err = Generate(sampleReport(), WithDateString("31/12/2023"))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = Generate(sampleReport(), WithDate(time.Time{}))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = Generate(nil)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
