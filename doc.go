// Package specdiff compares two OpenAPI 3.x documents and reports what changed
// between them, one record per operation.
//
// The library is split into a few packages:
//
//   - parser: Parse JSON or YAML documents into an ordered value tree with an operation index
//   - differ: Compare two parsed documents and classify each change as breaking or not
//   - releasenotes: Render a comparison report as Markdown release notes
//   - linediff: Compare the raw text of two documents line by line
//   - lint: Optional structural validation of a document
//
// # Quick Start
//
//	import (
//		"github.com/erraggy/specdiff/differ"
//		"github.com/erraggy/specdiff/parser"
//	)
//
//	oldDoc, err := parser.ParseFile("v1.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	newDoc, err := parser.ParseFile("v2.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := differ.Compare(oldDoc, newDoc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d breaking changes\n", report.Summary.BreakingCount)
//
// # Report Shape
//
// A report holds a summary of counts, one [differ.Change] per operation that was
// added, deleted, or updated, the raw text of both inputs, and the parsed new
// document. Operations that are identical on both sides are omitted.
//
// # Breaking Changes
//
// Every field-level difference is classified by a [differ.Policy] when it is
// recorded. The default policy treats removed operations, type changes, newly
// required request inputs, and removed response fields as breaking. A
// [differ.RulePolicy] loaded from YAML can override individual decisions.
//
// # Command Line
//
// The specdiff binary wraps the library:
//
//	specdiff compare v1.yaml v2.yaml --format text
//	specdiff release-notes v1.yaml v2.yaml
//	specdiff serve --addr :8080
package specdiff
