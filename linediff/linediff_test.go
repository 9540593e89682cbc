package linediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		oldText   string
		newText   string
		want      []Status
		wantStats Stats
	}{
		{
			name:      "identical",
			oldText:   "a\nb",
			newText:   "a\nb",
			want:      []Status{StatusUnchanged, StatusUnchanged},
			wantStats: Stats{Unchanged: 2},
		},
		{
			name:      "appended lines",
			oldText:   "a",
			newText:   "a\nb\nc",
			want:      []Status{StatusUnchanged, StatusAdded, StatusAdded},
			wantStats: Stats{Unchanged: 1, Additions: 2},
		},
		{
			name:      "truncated",
			oldText:   "a\nb",
			newText:   "a",
			want:      []Status{StatusUnchanged, StatusDeleted},
			wantStats: Stats{Unchanged: 1, Deletions: 1},
		},
		{
			name:      "insertion shifts following lines",
			oldText:   "a\nc\nd",
			newText:   "a\nb\nc\nd",
			want:      []Status{StatusUnchanged, StatusModified, StatusModified, StatusAdded},
			wantStats: Stats{Unchanged: 1, Modifications: 2, Additions: 1},
		},
		{
			name:      "blank line replaced",
			oldText:   "a\n\nc",
			newText:   "a\nb\n",
			want:      []Status{StatusUnchanged, StatusAdded, StatusDeleted},
			wantStats: Stats{Unchanged: 1, Additions: 1, Deletions: 1},
		},
		{
			name:      "empty inputs",
			want:      []Status{StatusUnchanged},
			wantStats: Stats{Unchanged: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compare(tt.oldText, tt.newText)
			got := make([]Status, len(res.Lines))
			for i, l := range res.Lines {
				got[i] = l.Status
				assert.Equal(t, i+1, l.Number)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStats, res.Stats)
		})
	}
}

func TestHasChanges(t *testing.T) {
	assert.False(t, Compare("x\ny", "x\ny").HasChanges())
	assert.True(t, Compare("x", "y").HasChanges())
}
