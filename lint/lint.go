// Package lint runs structural OpenAPI 3 validation over comparison inputs.
//
// Findings are advisory. A document with issues is still compared; callers
// surface the issues as warnings next to the report.
package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/specdiff/internal/httputil"
	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

// Issue is one validation finding.
type Issue struct {
	Side    oaserrors.Side `json:"side,omitempty" yaml:"side,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// String formats the issue with its side, like parse errors do.
func (i Issue) String() string {
	if i.Side == "" {
		return i.Message
	}
	return fmt.Sprintf("%s document: %s", i.Side, i.Message)
}

// Bytes validates raw document text. External references are not followed.
func Bytes(ctx context.Context, side oaserrors.Side, data []byte) []Issue {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return []Issue{{Side: side, Message: err.Error()}}
	}
	if err := doc.Validate(ctx); err != nil {
		return issuesFrom(side, err)
	}
	return nil
}

// Document validates a parsed document's raw text, then checks the status
// codes and media types keyed under each operation.
func Document(ctx context.Context, doc *parser.Document) []Issue {
	return append(Bytes(ctx, doc.Side, doc.Raw), keyIssues(doc)...)
}

// Pair validates both comparison inputs, old first.
func Pair(ctx context.Context, oldDoc, newDoc *parser.Document) []Issue {
	return append(Document(ctx, oldDoc), Document(ctx, newDoc)...)
}

func keyIssues(doc *parser.Document) []Issue {
	var issues []Issue
	report := func(op parser.Operation, format string, args ...any) {
		msg := fmt.Sprintf("%s %s: ", op.Method, op.Path) + fmt.Sprintf(format, args...)
		issues = append(issues, Issue{Side: doc.Side, Message: msg})
	}
	checkContent := func(op parser.Operation, where string, holder jsonvalue.Value) {
		holder, _ = doc.Deref(holder)
		for _, mt := range holder.Get("content").Object().Keys() {
			if !httputil.ValidMediaType(mt) {
				report(op, "invalid media type %q in %s", mt, where)
			}
		}
	}

	for _, op := range doc.Operations() {
		checkContent(op, "request body", op.Node.Get("requestBody"))
		responses := op.Node.Get("responses").Object()
		for _, code := range responses.Keys() {
			if !httputil.ValidStatusCode(code) {
				report(op, "invalid response status code %q", code)
				continue
			}
			checkContent(op, "response "+code, responses.Get(code))
		}
	}
	return issues
}

func issuesFrom(side oaserrors.Side, err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]Issue, 0, len(multi))
		for _, e := range multi {
			issues = append(issues, Issue{Side: side, Message: e.Error()})
		}
		return issues
	}
	return []Issue{{Side: side, Message: err.Error()}}
}
