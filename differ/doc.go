/*
Package differ compares two OpenAPI 3.x documents operation by operation and
classifies each difference as breaking or not.

# Overview

Compare aligns the operations of an old and a new document by upper-case
method and exact path template. Every operation lands in one of three
buckets:

  - StatusAdded: present only in the new document
  - StatusDeleted: present only in the old document (always breaking)
  - StatusUpdated: present in both with at least one Detail

Operations that compare equal are left out of the report.

# Details

For each aligned pair the differ walks parameters, the request body, the
responses, and finally the remaining operation keys. Every difference
becomes a Detail with a dot-delimited Location relative to the operation
object, for example:

	responses.200.content.application/json.schema.properties.name

Local $ref pointers are followed on both sides, so a change inside a shared
component appears under every operation that uses it. Recursive schemas are
cut when the same pair of schemas is met again on the current path.

# Change Types

  - ChangeTypeMismatch: a schema type, or the JSON kind of a node, differs
  - ChangeValueChanged: a scalar or array differs
  - ChangeItemAdded and ChangeItemRemoved: a node exists on one side only
  - ChangeRequiredAdded: a parameter, body, or property became required

# Policies

Each Detail is classified when it is recorded by a Policy. DefaultPolicy
encodes the usual client-compatibility rules. StrictPolicy and LenientPolicy
shift the line. RulePolicy layers expr-lang conditions over any of them:

	policy, err := differ.LoadRules("breaking-rules.yaml")
	if err != nil {
		log.Fatal(err)
	}
	report, err := differ.Compare(oldDoc, newDoc, differ.WithPolicy(policy))

# Example

	oldDoc, err := parser.ParseWithOptions(
		parser.WithFilePath("v1.yaml"),
		parser.WithSide(oaserrors.SideOld),
	)
	if err != nil {
		log.Fatal(err)
	}
	newDoc, err := parser.ParseWithOptions(
		parser.WithFilePath("v2.yaml"),
		parser.WithSide(oaserrors.SideNew),
	)
	if err != nil {
		log.Fatal(err)
	}

	report, err := differ.Compare(oldDoc, newDoc)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range report.Changes {
		fmt.Printf("%s %s: %s\n", c.Status, c.ID, c.SummaryText)
	}

# Related Packages

  - [github.com/erraggy/specdiff/parser] - Parse documents and align operations
  - [github.com/erraggy/specdiff/releasenotes] - Render a Report as Markdown
  - [github.com/erraggy/specdiff/linediff] - Line-by-line comparison of the raw inputs
*/
package differ
