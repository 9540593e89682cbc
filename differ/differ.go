package differ

import (
	"cmp"
	"slices"

	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

// Differ compares OpenAPI documents.
//
// A Differ holds no state between calls; one instance may run many
// comparisons, including concurrently.
type Differ struct {
	// Policy decides which differences are breaking. When nil, DefaultPolicy is used.
	Policy Policy
	// Logger receives debug output and duplicate-operation warnings. When nil, nothing is logged.
	Logger parser.Logger
	// StrictAlignment turns a duplicate (method, path) declaration into an error
	// instead of keeping the last declaration.
	StrictAlignment bool
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{Policy: DefaultPolicy{}}
}

func (d *Differ) policy() Policy {
	if d.Policy != nil {
		return d.Policy
	}
	return DefaultPolicy{}
}

func (d *Differ) log() parser.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return parser.NopLogger{}
}

// Compare aligns the operations of oldDoc and newDoc and reports every
// operation that was added, deleted, or changed.
//
// Compare performs no I/O and does not modify either document. It fails only
// for nil documents or, with StrictAlignment, for duplicate operations; an
// empty change list is a normal result.
func (d *Differ) Compare(oldDoc, newDoc *parser.Document) (*Report, error) {
	if oldDoc == nil || newDoc == nil {
		return nil, &oaserrors.ConfigError{Option: "documents", Message: "both documents are required"}
	}

	var warnings []string
	for _, doc := range []*parser.Document{oldDoc, newDoc} {
		for _, amb := range doc.Ambiguities {
			if d.StrictAlignment {
				return nil, amb
			}
			warnings = append(warnings, amb.Error())
		}
	}

	s := newSession(oldDoc, newDoc, d.policy())
	defer s.release()

	changes := make([]Change, 0)
	for _, op := range oldDoc.Operations() {
		newOp, ok := newDoc.Operation(op.Method, op.Path)
		if !ok {
			changes = append(changes, Change{
				ID:          op.String(),
				Path:        op.Path,
				Method:      op.Method,
				Status:      StatusDeleted,
				IsBreaking:  true,
				SummaryText: summaryDeleted,
				Details:     []Detail{},
			})
			continue
		}

		details := s.diffOperation(op, newOp)
		if len(details) == 0 {
			continue
		}
		breaking := false
		for _, det := range details {
			if det.IsBreaking {
				breaking = true
				break
			}
		}
		changes = append(changes, Change{
			ID:          op.String(),
			Path:        op.Path,
			Method:      op.Method,
			Status:      StatusUpdated,
			IsBreaking:  breaking,
			SummaryText: summarizeDetails(details),
			Details:     details,
		})
	}

	for _, op := range newDoc.Operations() {
		if _, ok := oldDoc.Operation(op.Method, op.Path); ok {
			continue
		}
		changes = append(changes, Change{
			ID:          op.String(),
			Path:        op.Path,
			Method:      op.Method,
			Status:      StatusAdded,
			SummaryText: summaryAdded,
			Details:     []Detail{},
		})
	}

	slices.SortStableFunc(changes, func(a, b Change) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(parser.MethodRank(a.Method), parser.MethodRank(b.Method))
	})

	report := &Report{
		Summary:  Summarize(changes),
		Changes:  changes,
		RawFiles: RawFiles{Old: oldDoc.RawText(), New: newDoc.RawText()},
		APISpec:  newDoc.Root,
		Warnings: warnings,
	}

	d.log().Debug("compared documents",
		"old", oldDoc.SourcePath,
		"new", newDoc.SourcePath,
		"added", report.Summary.AddedCount,
		"updated", report.Summary.UpdatedCount,
		"deleted", report.Summary.DeletedCount,
		"breaking", report.Summary.BreakingCount)
	return report, nil
}

// CompareBytes parses both inputs and compares them.
// A parse failure is returned with the failing side identified; no report is produced.
func (d *Differ) CompareBytes(oldData, newData []byte) (*Report, error) {
	oldDoc, err := d.parseSide(oldData, oaserrors.SideOld)
	if err != nil {
		return nil, err
	}
	newDoc, err := d.parseSide(newData, oaserrors.SideNew)
	if err != nil {
		return nil, err
	}
	return d.Compare(oldDoc, newDoc)
}

func (d *Differ) parseSide(data []byte, side oaserrors.Side) (*parser.Document, error) {
	p := parser.New()
	p.Side = side
	p.Logger = d.log().With("side", string(side))
	return p.ParseBytes(data)
}
