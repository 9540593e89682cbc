package differ

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

func parseSide(t *testing.T, side oaserrors.Side, input string) *parser.Document {
	t.Helper()
	p := parser.New()
	p.Side = side
	doc, err := p.ParseBytes([]byte(input))
	require.NoError(t, err)
	return doc
}

func compareYAML(t *testing.T, oldYAML, newYAML string, opts ...Option) *Report {
	t.Helper()
	report, err := Compare(parseSide(t, oaserrors.SideOld, oldYAML), parseSide(t, oaserrors.SideNew, newYAML), opts...)
	require.NoError(t, err)
	return report
}

func parseFixture(t *testing.T, side oaserrors.Side, path string) *parser.Document {
	t.Helper()
	doc, err := parser.ParseWithOptions(parser.WithFilePath(path), parser.WithSide(side))
	require.NoError(t, err)
	return doc
}

const usersV1 = `openapi: 3.0.0
info: {title: users, version: "1"}
paths:
  /users:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id: {type: integer}
`

const usersV2 = `openapi: 3.0.0
info: {title: users, version: "1"}
paths:
  /users:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id: {type: integer}
                  name: {type: string}
`

func TestCompareResponsePropertyAdded(t *testing.T) {
	report := compareYAML(t, usersV1, usersV2)

	require.Len(t, report.Changes, 1)
	c := report.Changes[0]
	assert.Equal(t, "GET:/users", c.ID)
	assert.Equal(t, StatusUpdated, c.Status)
	assert.False(t, c.IsBreaking)

	require.Len(t, c.Details, 1)
	d := c.Details[0]
	assert.Equal(t, "responses.200.content.application/json.schema.properties.name", d.Location)
	assert.Equal(t, ChangeItemAdded, d.ChangeType)
	assert.False(t, d.IsBreaking)
	assert.True(t, d.OldValue.IsAbsent())
	assert.Equal(t, `{"type":"string"}`, d.NewValue.String())
	assert.Equal(t, ContextResponse, d.Context)
	assert.Equal(t, ElementProperty, d.Element)

	assert.Equal(t, Summary{UpdatedCount: 1}, report.Summary)
	assert.Equal(t, "Item added at responses.200.content.application/json.schema.properties.name", c.SummaryText)
}

func TestCompareRequestPropertyBecomesRequired(t *testing.T) {
	oldYAML := `openapi: 3.0.0
paths:
  /orders:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [id]
              properties:
                id: {type: string}
                note: {type: string}
      responses:
        "201": {description: created}
`
	newYAML := `openapi: 3.0.0
paths:
  /orders:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [id, note]
              properties:
                id: {type: string}
                note: {type: string}
      responses:
        "201": {description: created}
`
	report := compareYAML(t, oldYAML, newYAML)

	require.Len(t, report.Changes, 1)
	c := report.Changes[0]
	assert.Equal(t, "POST:/orders", c.ID)
	assert.True(t, c.IsBreaking)
	require.Len(t, c.Details, 1)
	d := c.Details[0]
	assert.Equal(t, "requestBody.content.application/json.schema.required.note", d.Location)
	assert.Equal(t, ChangeRequiredAdded, d.ChangeType)
	assert.True(t, d.IsBreaking)
	assert.Equal(t, "false", d.OldValue.String())
	assert.Equal(t, "true", d.NewValue.String())
	assert.Equal(t, 1, report.Summary.BreakingCount)
}

func TestCompareDeletedOperation(t *testing.T) {
	oldYAML := `openapi: 3.0.0
paths:
  /legacy:
    delete:
      responses:
        "204": {description: gone}
  /users:
    get:
      responses:
        "200": {description: ok}
`
	newYAML := `openapi: 3.0.0
paths:
  /users:
    get:
      responses:
        "200": {description: ok}
`
	report := compareYAML(t, oldYAML, newYAML)

	require.Len(t, report.Changes, 1)
	c := report.Changes[0]
	assert.Equal(t, "DELETE:/legacy", c.ID)
	assert.Equal(t, StatusDeleted, c.Status)
	assert.True(t, c.IsBreaking)
	assert.NotNil(t, c.Details)
	assert.Empty(t, c.Details)
	assert.Equal(t, "Endpoint deleted", c.SummaryText)
	assert.Equal(t, Summary{DeletedCount: 1, BreakingCount: 1}, report.Summary)

	// Deleted operations serialize with an empty details array, not null.
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"details":[]`)
}

func TestCompareAddedOperation(t *testing.T) {
	report := compareYAML(t, `openapi: 3.0.0
paths: {}
`, usersV1)

	require.Len(t, report.Changes, 1)
	c := report.Changes[0]
	assert.Equal(t, StatusAdded, c.Status)
	assert.False(t, c.IsBreaking)
	assert.Empty(t, c.Details)
	assert.Equal(t, "Endpoint added", c.SummaryText)
	assert.Equal(t, Summary{AddedCount: 1}, report.Summary)
}

func TestCompareIdentity(t *testing.T) {
	t.Run("same document", func(t *testing.T) {
		doc := parseFixture(t, oaserrors.SideOld, "../testdata/petstore-v1.yaml")
		report, err := Compare(doc, doc)
		require.NoError(t, err)
		assert.NotNil(t, report.Changes)
		assert.Empty(t, report.Changes)
		assert.Equal(t, Summary{}, report.Summary)
	})

	t.Run("parsed twice", func(t *testing.T) {
		report, err := Compare(
			parseFixture(t, oaserrors.SideOld, "../testdata/petstore-v2.yaml"),
			parseFixture(t, oaserrors.SideNew, "../testdata/petstore-v2.yaml"),
		)
		require.NoError(t, err)
		assert.Empty(t, report.Changes)
		assert.False(t, report.HasBreakingChanges())
	})
}

func TestCompareRecursiveSchema(t *testing.T) {
	tree := func(extra string) string {
		return `openapi: 3.1.0
paths:
  /tree:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Node"
components:
  schemas:
    Node:
      type: object
      properties:
        name: {type: string}
        children:
          type: array
          items:
            $ref: "#/components/schemas/Node"
` + extra
	}

	t.Run("unchanged", func(t *testing.T) {
		report := compareYAML(t, tree(""), tree(""))
		assert.Empty(t, report.Changes)
	})

	t.Run("changed once", func(t *testing.T) {
		report := compareYAML(t, tree(""), tree("        label: {type: string}\n"))
		require.Len(t, report.Changes, 1)
		require.Len(t, report.Changes[0].Details, 1)
		assert.Equal(t, "responses.200.content.application/json.schema.properties.label",
			report.Changes[0].Details[0].Location)
	})
}

// chainSpec builds a document whose schemas S0..S<depth> each reference the
// next one twice, so S<depth> is reachable through 2^depth paths.
func chainSpec(depth int, extra string) string {
	var b strings.Builder
	b.WriteString(`openapi: 3.0.0
paths:
  /chain:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/S0"
components:
  schemas:
`)
	for i := range depth {
		fmt.Fprintf(&b, "    S%d:\n      type: object\n      properties:\n", i)
		fmt.Fprintf(&b, "        a: {$ref: \"#/components/schemas/S%d\"}\n", i+1)
		fmt.Fprintf(&b, "        b: {$ref: \"#/components/schemas/S%d\"}\n", i+1)
		if i == 0 {
			b.WriteString(extra)
		}
	}
	fmt.Fprintf(&b, "    S%d: {type: string}\n", depth)
	return b.String()
}

func TestCompareSharedReferences(t *testing.T) {
	const depth = 40

	t.Run("unchanged", func(t *testing.T) {
		report := compareYAML(t, chainSpec(depth, ""), chainSpec(depth, ""))
		assert.Empty(t, report.Changes)
	})

	t.Run("changed at the root", func(t *testing.T) {
		report := compareYAML(t, chainSpec(depth, ""), chainSpec(depth, "        c: {type: integer}\n"))
		require.Len(t, report.Changes, 1)
		require.Len(t, report.Changes[0].Details, 1)
		assert.Equal(t, "responses.200.content.application/json.schema.properties.c",
			report.Changes[0].Details[0].Location)
		assert.Equal(t, ChangeItemAdded, report.Changes[0].Details[0].ChangeType)
	})
}

func TestCompareTypeArrays(t *testing.T) {
	base := "openapi: 3.1.0\npaths:\n  /q:\n    get:\n      parameters:\n        - {name: q, in: query, schema: {type: %s}}\n"
	tests := []struct {
		name     string
		oldType  string
		newType  string
		mismatch bool
	}{
		{name: "reordered", oldType: `[string, "null"]`, newType: `["null", string]`},
		{name: "single and one-element array", oldType: "string", newType: "[string]"},
		{name: "null added", oldType: "[string]", newType: `[string, "null"]`, mismatch: true},
		{name: "different scalar", oldType: "string", newType: "integer", mismatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := compareYAML(t, fmt.Sprintf(base, tt.oldType), fmt.Sprintf(base, tt.newType))
			assertDetailValues(t, report)
			if !tt.mismatch {
				assert.Empty(t, report.Changes)
				return
			}
			require.Len(t, report.Changes, 1)
			require.Len(t, report.Changes[0].Details, 1)
			d := report.Changes[0].Details[0]
			assert.Equal(t, "parameters.q.schema.type", d.Location)
			assert.Equal(t, ChangeTypeMismatch, d.ChangeType)
		})
	}
}

func TestComparePetstore(t *testing.T) {
	report, err := Compare(
		parseFixture(t, oaserrors.SideOld, "../testdata/petstore-v1.yaml"),
		parseFixture(t, oaserrors.SideNew, "../testdata/petstore-v2.yaml"),
	)
	require.NoError(t, err)

	assert.Equal(t, Summary{AddedCount: 1, UpdatedCount: 3, DeletedCount: 1, BreakingCount: 4}, report.Summary)

	var ids []string
	for _, c := range report.Changes {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"GET:/pets",
		"POST:/pets",
		"GET:/pets/{petId}",
		"DELETE:/pets/{petId}",
		"PATCH:/pets/{petId}",
	}, ids)

	type row struct {
		location string
		ct       ChangeType
		breaking bool
	}
	rows := func(c Change) []row {
		var out []row
		for _, d := range c.Details {
			out = append(out, row{d.Location, d.ChangeType, d.IsBreaking})
		}
		return out
	}

	list, ok := report.Change("GET:/pets")
	require.True(t, ok)
	const item = "responses.200.content.application/json.schema.items."
	assert.Equal(t, []row{
		{"parameters.limit.required", ChangeRequiredAdded, true},
		{item + "properties.id.type", ChangeTypeMismatch, true},
		{item + "properties.id.format", ChangeItemRemoved, false},
		{item + "properties.tag", ChangeItemRemoved, true},
		{item + "properties.birthday", ChangeItemAdded, false},
	}, rows(list))
	assert.True(t, list.IsBreaking)
	assert.NotContains(t, list.SummaryText, "more)")

	create, ok := report.Change("POST:/pets")
	require.True(t, ok)
	assert.Equal(t, []row{
		{"requestBody.content.application/json.schema.properties.species", ChangeItemAdded, true},
	}, rows(create))

	get, ok := report.Change("GET:/pets/{petId}")
	require.True(t, ok)
	assert.Len(t, get.Details, 4)
	assert.Equal(t, "responses.200.content.application/json.schema.properties.id.type", get.Details[0].Location)

	assert.Equal(t, "2.0.0", report.APISpec.Get("info").Get("version").Text())
	assert.Contains(t, report.RawFiles.Old, "deletePet")
	assert.Contains(t, report.RawFiles.New, "updatePet")
}

func TestCompareCountInvariants(t *testing.T) {
	report, err := Compare(
		parseFixture(t, oaserrors.SideOld, "../testdata/petstore-v1.yaml"),
		parseFixture(t, oaserrors.SideNew, "../testdata/petstore-v2.yaml"),
	)
	require.NoError(t, err)

	assert.Equal(t, len(report.Changes), report.Summary.Total())
	breaking := 0
	ids := make(map[string]bool)
	for _, c := range report.Changes {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		if c.IsBreaking {
			breaking++
		}
		switch c.Status {
		case StatusDeleted:
			assert.True(t, c.IsBreaking)
		case StatusUpdated:
			assert.NotEmpty(t, c.Details)
			anyBreaking := false
			for _, d := range c.Details {
				anyBreaking = anyBreaking || d.IsBreaking
			}
			assert.Equal(t, anyBreaking, c.IsBreaking)
		}
	}
	assert.Equal(t, breaking, report.Summary.BreakingCount)
	assertDetailValues(t, report)
}

// assertDetailValues checks which sides of each detail carry a value:
// additions and removals have exactly one, changes have two that differ.
func assertDetailValues(t *testing.T, report *Report) {
	t.Helper()
	for _, c := range report.Changes {
		for _, d := range c.Details {
			switch d.ChangeType {
			case ChangeItemAdded:
				assert.True(t, d.OldValue.IsAbsent(), "%s %s: old value", c.ID, d.Location)
				assert.False(t, d.NewValue.IsAbsent(), "%s %s: new value", c.ID, d.Location)
			case ChangeItemRemoved:
				assert.False(t, d.OldValue.IsAbsent(), "%s %s: old value", c.ID, d.Location)
				assert.True(t, d.NewValue.IsAbsent(), "%s %s: new value", c.ID, d.Location)
			case ChangeValueChanged, ChangeTypeMismatch:
				assert.False(t, d.OldValue.IsAbsent(), "%s %s: old value", c.ID, d.Location)
				assert.False(t, d.NewValue.IsAbsent(), "%s %s: new value", c.ID, d.Location)
				assert.False(t, jsonvalue.Equal(d.OldValue, d.NewValue), "%s %s: values equal", c.ID, d.Location)
			}
		}
	}
}

func TestCompareParameters(t *testing.T) {
	base := `openapi: 3.0.0
paths:
  /items/{id}:
    parameters:
      - {name: id, in: path, required: true, schema: {type: string}}
    get:
%s      responses:
        "200": {description: ok}
`
	tests := []struct {
		name     string
		oldOp    string
		newOp    string
		location string
		ct       ChangeType
		breaking bool
	}{
		{
			name:     "optional parameter added",
			newOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string}}\n",
			location: "parameters.q",
			ct:       ChangeItemAdded,
		},
		{
			name:     "required parameter added",
			newOp:    "      parameters:\n        - {name: q, in: query, required: true, schema: {type: string}}\n",
			location: "parameters.q",
			ct:       ChangeItemAdded,
			breaking: true,
		},
		{
			name:     "parameter removed",
			oldOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string}}\n",
			location: "parameters.q",
			ct:       ChangeItemRemoved,
		},
		{
			name:     "operation level overrides path level",
			newOp:    "      parameters:\n        - {name: id, in: path, required: true, schema: {type: integer}}\n",
			location: "parameters.id.schema.type",
			ct:       ChangeTypeMismatch,
			breaking: true,
		},
		{
			name:     "request enum narrowed",
			oldOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string, enum: [a, b]}}\n",
			newOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string, enum: [a]}}\n",
			location: "parameters.q.schema.enum",
			ct:       ChangeValueChanged,
			breaking: true,
		},
		{
			name:     "request enum widened",
			oldOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string, enum: [a]}}\n",
			newOp:    "      parameters:\n        - {name: q, in: query, schema: {type: string, enum: [a, b]}}\n",
			location: "parameters.q.schema.enum",
			ct:       ChangeValueChanged,
		},
		{
			name:     "description is metadata",
			oldOp:    "      parameters:\n        - {name: q, in: query, description: old}\n",
			newOp:    "      parameters:\n        - {name: q, in: query, description: new}\n",
			location: "parameters.q.description",
			ct:       ChangeValueChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := compareYAML(t, fmt.Sprintf(base, tt.oldOp), fmt.Sprintf(base, tt.newOp))
			assertDetailValues(t, report)
			require.Len(t, report.Changes, 1)
			c := report.Changes[0]
			require.Len(t, c.Details, 1)
			assert.Equal(t, tt.location, c.Details[0].Location)
			assert.Equal(t, tt.ct, c.Details[0].ChangeType)
			assert.Equal(t, tt.breaking, c.Details[0].IsBreaking)
			assert.Equal(t, ContextRequest, c.Details[0].Context)
		})
	}
}

func TestCompareResponses(t *testing.T) {
	base := `openapi: 3.0.0
paths:
  /ping:
    get:
      responses:
%s`
	tests := []struct {
		name     string
		oldResp  string
		newResp  string
		location string
		ct       ChangeType
		breaking bool
	}{
		{
			name:     "status code removed",
			oldResp:  "        \"200\": {description: ok}\n        \"404\": {description: missing}\n",
			newResp:  "        \"200\": {description: ok}\n",
			location: "responses.404",
			ct:       ChangeItemRemoved,
			breaking: true,
		},
		{
			name:     "status code added",
			oldResp:  "        \"200\": {description: ok}\n",
			newResp:  "        \"200\": {description: ok}\n        \"404\": {description: missing}\n",
			location: "responses.404",
			ct:       ChangeItemAdded,
		},
		{
			name:     "header removed",
			oldResp:  "        \"200\":\n          description: ok\n          headers:\n            X-Rate: {schema: {type: integer}}\n",
			newResp:  "        \"200\":\n          description: ok\n",
			location: "responses.200.headers.X-Rate",
			ct:       ChangeItemRemoved,
			breaking: true,
		},
		{
			name:     "header schema changed",
			oldResp:  "        \"200\":\n          description: ok\n          headers:\n            X-Rate: {schema: {type: integer}}\n",
			newResp:  "        \"200\":\n          description: ok\n          headers:\n            X-Rate: {schema: {type: string}}\n",
			location: "responses.200.headers.X-Rate.schema.type",
			ct:       ChangeTypeMismatch,
			breaking: true,
		},
		{
			name:     "media type removed",
			oldResp:  "        \"200\":\n          description: ok\n          content:\n            application/json: {}\n            application/xml: {}\n",
			newResp:  "        \"200\":\n          description: ok\n          content:\n            application/json: {}\n",
			location: "responses.200.content.application/xml",
			ct:       ChangeItemRemoved,
			breaking: true,
		},
		{
			name:     "description change",
			oldResp:  "        \"200\": {description: ok}\n",
			newResp:  "        \"200\": {description: fine}\n",
			location: "responses.200.description",
			ct:       ChangeValueChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := compareYAML(t, fmt.Sprintf(base, tt.oldResp), fmt.Sprintf(base, tt.newResp))
			assertDetailValues(t, report)
			require.Len(t, report.Changes, 1)
			c := report.Changes[0]
			require.Len(t, c.Details, 1)
			assert.Equal(t, tt.location, c.Details[0].Location)
			assert.Equal(t, tt.ct, c.Details[0].ChangeType)
			assert.Equal(t, tt.breaking, c.Details[0].IsBreaking)
		})
	}
}

func TestCompareNumericEquality(t *testing.T) {
	oldYAML := "openapi: 3.0.0\npaths:\n  /n:\n    get:\n      parameters:\n        - {name: n, in: query, schema: {maximum: 1}}\n"
	newJSON := `{"openapi":"3.0.0","paths":{"/n":{"get":{"parameters":[{"name":"n","in":"query","schema":{"maximum":1.0}}]}}}}`
	report := compareYAML(t, oldYAML, newJSON)
	assert.Empty(t, report.Changes)
}

func TestCompareOperationMetadata(t *testing.T) {
	oldYAML := "openapi: 3.0.0\npaths:\n  /m:\n    get:\n      summary: old\n      security: [{apiKey: []}]\n"
	newYAML := "openapi: 3.0.0\npaths:\n  /m:\n    get:\n      summary: new\n      deprecated: true\n      security: []\n"
	report := compareYAML(t, oldYAML, newYAML)
	require.Len(t, report.Changes, 1)
	c := report.Changes[0]
	require.Len(t, c.Details, 3)
	assert.Equal(t, "summary", c.Details[0].Location)
	assert.Equal(t, ElementMetadata, c.Details[0].Element)
	assert.Equal(t, "security", c.Details[1].Location)
	assert.Equal(t, ElementSecurity, c.Details[1].Element)
	assert.Equal(t, "deprecated", c.Details[2].Location)
	assert.Equal(t, ChangeItemAdded, c.Details[2].ChangeType)
	assert.False(t, c.IsBreaking)
}

func TestCompareSummaryTextTruncation(t *testing.T) {
	oldYAML := "openapi: 3.0.0\npaths:\n  /s:\n    get:\n      x-a: 1\n      x-b: 1\n      x-c: 1\n      x-d: 1\n      x-e: 1\n      x-f: 1\n      x-g: 1\n"
	newYAML := "openapi: 3.0.0\npaths:\n  /s:\n    get:\n      x-a: 2\n      x-b: 2\n      x-c: 2\n      x-d: 2\n      x-e: 2\n      x-f: 2\n      x-g: 2\n"
	report := compareYAML(t, oldYAML, newYAML)
	require.Len(t, report.Changes, 1)
	assert.Equal(t,
		"Value changed at x-a; Value changed at x-b; Value changed at x-c; Value changed at x-d; Value changed at x-e (+2 more)",
		report.Changes[0].SummaryText)
}

func TestCompareDuplicateOperations(t *testing.T) {
	dup := `openapi: 3.0.0
paths:
  /users:
    get: {summary: first}
    GET: {summary: second}
`
	t.Run("last wins with warning", func(t *testing.T) {
		report := compareYAML(t, dup, dup)
		assert.Empty(t, report.Changes)
		assert.Len(t, report.Warnings, 2)
	})

	t.Run("strict alignment", func(t *testing.T) {
		_, err := Compare(parseSide(t, oaserrors.SideOld, dup), parseSide(t, oaserrors.SideNew, dup),
			WithStrictAlignment(true))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrAlignmentAmbiguity))
		assert.Equal(t, oaserrors.SideOld, oaserrors.SideOf(err))
	})
}

func TestCompareBytesParseErrorSide(t *testing.T) {
	tests := []struct {
		name     string
		oldData  string
		newData  string
		wantSide oaserrors.Side
		wantErr  error
	}{
		{"old malformed", "openapi: [", usersV1, oaserrors.SideOld, oaserrors.ErrParse},
		{"new malformed", usersV1, "openapi: [", oaserrors.SideNew, oaserrors.ErrParse},
		{"new swagger", usersV1, "swagger: \"2.0\"\npaths: {}\n", oaserrors.SideNew, oaserrors.ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := CompareBytes([]byte(tt.oldData), []byte(tt.newData))
			require.Error(t, err)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantSide, oaserrors.SideOf(err))
		})
	}
}

func TestCompareNilDocument(t *testing.T) {
	_, err := New().Compare(nil, nil)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestWithPolicy(t *testing.T) {
	_, err := Compare(nil, nil, WithPolicy(nil))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	report := compareYAML(t, usersV1, usersV2, WithPolicy(PolicyFunc(func(Classification) bool { return true })))
	assert.True(t, report.Changes[0].IsBreaking)
}
