package differ

import (
	"encoding/json"

	"github.com/erraggy/specdiff/jsonvalue"
)

// Status classifies an operation's presence across the two documents.
type Status string

const (
	// StatusAdded means the operation exists only in the new document
	StatusAdded Status = "added"
	// StatusDeleted means the operation exists only in the old document
	StatusDeleted Status = "deleted"
	// StatusUpdated means the operation exists in both documents with differences
	StatusUpdated Status = "updated"
)

// ChangeType classifies a single field-level difference.
type ChangeType string

const (
	// ChangeValueChanged means a value is present on both sides and differs
	ChangeValueChanged ChangeType = "value_changed"
	// ChangeTypeMismatch means the value's type differs between sides
	ChangeTypeMismatch ChangeType = "type_mismatch"
	// ChangeItemAdded means a node exists only in the new document
	ChangeItemAdded ChangeType = "item_added"
	// ChangeItemRemoved means a node exists only in the old document
	ChangeItemRemoved ChangeType = "item_removed"
	// ChangeRequiredAdded means an existing input became required
	ChangeRequiredAdded ChangeType = "required_added"
)

// Detail is one leaf-level difference inside an operation.
//
// OldValue is absent for item_added and NewValue is absent for item_removed;
// absent values serialize as jsonvalue.AbsentMarker.
type Detail struct {
	// Location is the dot-delimited path from the operation object to the node
	Location string
	// ChangeType classifies the difference
	ChangeType ChangeType
	// OldValue is the node in the old document
	OldValue jsonvalue.Value
	// NewValue is the node in the new document
	NewValue jsonvalue.Value
	// IsBreaking is the policy verdict recorded when the detail was found
	IsBreaking bool
	// Context is the part of the exchange the node belongs to
	Context Context
	// Element is the kind of node that changed
	Element Element
}

type detailJSON struct {
	Location   string     `json:"location" yaml:"location"`
	ChangeType ChangeType `json:"change_type" yaml:"change_type"`
	OldValue   string     `json:"old_value" yaml:"old_value"`
	NewValue   string     `json:"new_value" yaml:"new_value"`
	IsBreaking bool       `json:"is_breaking" yaml:"is_breaking"`
}

func (d Detail) wire() detailJSON {
	return detailJSON{
		Location:   d.Location,
		ChangeType: d.ChangeType,
		OldValue:   d.OldValue.String(),
		NewValue:   d.NewValue.String(),
		IsBreaking: d.IsBreaking,
	}
}

// MarshalJSON renders values in their display form, with absent values as "N/A".
func (d Detail) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// MarshalYAML mirrors MarshalJSON.
func (d Detail) MarshalYAML() (any, error) {
	return d.wire(), nil
}

// Change is the diff record for one operation.
type Change struct {
	// ID is "METHOD:path", unique within a report
	ID string `json:"id" yaml:"id"`
	// Path is the URL template
	Path string `json:"path" yaml:"path"`
	// Method is the upper-case HTTP method
	Method string `json:"method" yaml:"method"`
	// Status is added, deleted, or updated
	Status Status `json:"status" yaml:"status"`
	// IsBreaking is true when the operation was deleted or any detail is breaking
	IsBreaking bool `json:"is_breaking" yaml:"is_breaking"`
	// SummaryText is a one-line synopsis
	SummaryText string `json:"summary_text" yaml:"summary_text"`
	// Details lists the field-level differences in discovery order
	Details []Detail `json:"details" yaml:"details"`
}

// BreakingDetails returns the details the policy marked as breaking.
func (c Change) BreakingDetails() []Detail {
	var out []Detail
	for _, d := range c.Details {
		if d.IsBreaking {
			out = append(out, d)
		}
	}
	return out
}

// Summary holds aggregate counts over a report's changes.
type Summary struct {
	AddedCount    int `json:"added_count" yaml:"added_count"`
	UpdatedCount  int `json:"updated_count" yaml:"updated_count"`
	DeletedCount  int `json:"deleted_count" yaml:"deleted_count"`
	BreakingCount int `json:"breaking_count" yaml:"breaking_count"`
}

// Total returns the number of changes counted.
func (s Summary) Total() int {
	return s.AddedCount + s.UpdatedCount + s.DeletedCount
}

// Summarize folds changes into counts.
func Summarize(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Status {
		case StatusAdded:
			s.AddedCount++
		case StatusUpdated:
			s.UpdatedCount++
		case StatusDeleted:
			s.DeletedCount++
		}
		if c.IsBreaking {
			s.BreakingCount++
		}
	}
	return s
}

// RawFiles carries the verbatim text of both inputs.
type RawFiles struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// Report is the result of one comparison. It is not modified after Compare returns.
type Report struct {
	Summary  Summary         `json:"summary" yaml:"summary"`
	Changes  []Change        `json:"changes" yaml:"changes"`
	RawFiles RawFiles        `json:"raw_files" yaml:"raw_files"`
	APISpec  jsonvalue.Value `json:"api_spec" yaml:"api_spec"`

	// Warnings holds recovered input problems such as duplicate operations
	Warnings []string `json:"-" yaml:"-"`
}

// HasBreakingChanges reports whether any change is breaking.
func (r *Report) HasBreakingChanges() bool {
	return r.Summary.BreakingCount > 0
}

// Change looks up a change by its "METHOD:path" identifier.
func (r *Report) Change(id string) (Change, bool) {
	for _, c := range r.Changes {
		if c.ID == id {
			return c, true
		}
	}
	return Change{}, false
}
