package differ

import (
	"fmt"
	"strings"
)

const (
	summaryAdded   = "Endpoint added"
	summaryDeleted = "Endpoint deleted"

	// maxSummaryPhrases bounds the phrases listed in an updated operation's summary.
	maxSummaryPhrases = 5
)

var changePhrases = map[ChangeType]string{
	ChangeTypeMismatch:  "Type mismatch at ",
	ChangeValueChanged:  "Value changed at ",
	ChangeRequiredAdded: "Required field added at ",
	ChangeItemAdded:     "Item added at ",
	ChangeItemRemoved:   "Item removed at ",
}

// summarizeDetails builds the one-line synopsis of an updated operation.
func summarizeDetails(details []Detail) string {
	phrases := make([]string, 0, len(details))
	seen := make(map[string]struct{}, len(details))
	for _, d := range details {
		phrase := changePhrases[d.ChangeType] + d.Location
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		phrases = append(phrases, phrase)
	}
	if len(phrases) <= maxSummaryPhrases {
		return strings.Join(phrases, "; ")
	}
	return fmt.Sprintf("%s (+%d more)",
		strings.Join(phrases[:maxSummaryPhrases], "; "), len(phrases)-maxSummaryPhrases)
}
