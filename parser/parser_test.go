package parser

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdiff/oaserrors"
)

const minimalYAML = `openapi: 3.0.0
info:
  title: Minimal
  version: "1"
paths:
  /users:
    get:
      responses:
        "200":
          description: ok
`

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFormat SourceFormat
		wantPath   string
		wantOps    []string
	}{
		{
			name:       "yaml",
			input:      minimalYAML,
			wantFormat: SourceFormatYAML,
			wantPath:   "ParseBytes.yaml",
			wantOps:    []string{"GET:/users"},
		},
		{
			name:       "json",
			input:      `{"openapi":"3.1.0","info":{"title":"x","version":"1"},"paths":{"/a":{"post":{},"get":{}}}}`,
			wantFormat: SourceFormatJSON,
			wantPath:   "ParseBytes.json",
			wantOps:    []string{"POST:/a", "GET:/a"},
		},
		{
			name:       "no paths",
			input:      "openapi: 3.1.0\ninfo: {title: x, version: '1'}\n",
			wantFormat: SourceFormatYAML,
			wantPath:   "ParseBytes.yaml",
		},
		{
			name:       "unquoted version",
			input:      "openapi: 3.0\npaths: {}\n",
			wantFormat: SourceFormatYAML,
			wantPath:   "ParseBytes.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New().ParseBytes([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, doc.SourceFormat)
			assert.Equal(t, tt.wantPath, doc.SourcePath)
			assert.Equal(t, tt.input, doc.RawText())

			var got []string
			for _, op := range doc.Operations() {
				got = append(got, op.String())
			}
			assert.Equal(t, tt.wantOps, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantVersion string
	}{
		{"malformed", "openapi: 3.0.0\npaths: [unclosed\n", oaserrors.ErrParse, ""},
		{"empty", "", oaserrors.ErrParse, ""},
		{"scalar root", "just a string", oaserrors.ErrParse, ""},
		{"array root", "[1, 2]", oaserrors.ErrParse, ""},
		{"swagger", "swagger: '2.0'\npaths: {}\n", oaserrors.ErrUnsupportedVersion, "2.0"},
		{"no version", "info: {title: x}\n", oaserrors.ErrUnsupportedVersion, ""},
		{"version 4", "openapi: 4.0.0\n", oaserrors.ErrUnsupportedVersion, "4.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.Side = oaserrors.SideOld

			doc, err := p.ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, oaserrors.SideOld, oaserrors.SideOf(err))

			var ve *oaserrors.UnsupportedVersionError
			if errors.As(err, &ve) {
				assert.Equal(t, tt.wantVersion, ve.Version)
			}
		})
	}
}

func TestDuplicateOperations(t *testing.T) {
	input := `openapi: 3.0.0
paths:
  /users:
    get:
      summary: first
    post:
      summary: create
  /other:
    get: {}
  /users:
    get:
      summary: second
    GET:
      summary: third
`
	p := New()
	p.Side = oaserrors.SideNew
	doc, err := p.ParseBytes([]byte(input))
	require.NoError(t, err)

	op, ok := doc.Operation("get", "/users")
	require.True(t, ok)
	assert.Equal(t, "third", op.Node.Get("summary").Text())

	post, ok := doc.Operation("POST", "/users")
	require.True(t, ok, "operations from an earlier duplicate path item are kept")
	assert.Equal(t, "create", post.Node.Get("summary").Text())

	require.Len(t, doc.Ambiguities, 1)
	amb := doc.Ambiguities[0]
	assert.Equal(t, "GET", amb.Method)
	assert.Equal(t, "/users", amb.Path)
	assert.Equal(t, 3, amb.Count)
	assert.Equal(t, oaserrors.SideNew, amb.Side)
	assert.Len(t, doc.Warnings, 1)
	assert.Len(t, doc.Operations(), 3)
}

func TestPathItemRef(t *testing.T) {
	input := `openapi: 3.1.0
paths:
  /shared:
    $ref: "#/components/pathItems/Shared"
components:
  pathItems:
    Shared:
      get:
        summary: shared
`
	doc, err := New().ParseBytes([]byte(input))
	require.NoError(t, err)
	op, ok := doc.Operation("GET", "/shared")
	require.True(t, ok)
	assert.Equal(t, "shared", op.Node.Get("summary").Text())
}

func TestDeref(t *testing.T) {
	input := `openapi: 3.0.0
components:
  schemas:
    A:
      $ref: "#/components/schemas/B"
    B:
      type: string
    Loop1:
      $ref: "#/components/schemas/Loop2"
    Loop2:
      $ref: "#/components/schemas/Loop1"
    Ext:
      $ref: "other.yaml#/Thing"
`
	doc, err := New().ParseBytes([]byte(input))
	require.NoError(t, err)
	schemas := doc.Root.Get("components").Get("schemas")

	got, ref := doc.Deref(schemas.Get("A"))
	assert.Equal(t, "string", got.Get("type").Text())
	assert.Equal(t, "#/components/schemas/B", ref)

	got, ref = doc.Deref(schemas.Get("Ext"))
	assert.Equal(t, "other.yaml#/Thing", ref)
	assert.True(t, got.Has("$ref"))

	got, _ = doc.Deref(schemas.Get("Loop1"))
	assert.True(t, got.Has("$ref"), "reference loops stop at the depth limit")

	got, ref = doc.Deref(schemas.Get("B"))
	assert.Empty(t, ref)
	assert.Equal(t, "string", got.Get("type").Text())
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile("../testdata/petstore-v1.yaml")
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version)
	assert.Equal(t, SourceFormatYAML, doc.SourceFormat)
	assert.Len(t, doc.Operations(), 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, oaserrors.ErrSourceLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseURL(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openapi":"3.0.0","paths":{}}`))
	}))
	defer srv.Close()

	doc, err := ParseWithOptions(WithFilePath(srv.URL+"/spec"), WithUserAgent("test-agent"))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, doc.SourceFormat)
	assert.Equal(t, "test-agent", gotUA)

	_, err = ParseWithOptions(WithFilePath(srv.URL + "/missing"))
	assert.ErrorIs(t, err, oaserrors.ErrSourceLoad)
}

func TestParseWithOptions(t *testing.T) {
	t.Run("requires a source", func(t *testing.T) {
		_, err := ParseWithOptions()
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("rejects two sources", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(minimalYAML)), WithFilePath("x.yaml"))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("reader with source name", func(t *testing.T) {
		doc, err := ParseWithOptions(
			WithReader(strings.NewReader(minimalYAML)),
			WithSourceName("upload.yaml"),
			WithSide(oaserrors.SideOld),
		)
		require.NoError(t, err)
		assert.Equal(t, "upload.yaml", doc.SourcePath)
		assert.Equal(t, oaserrors.SideOld, doc.Side)
	})

	t.Run("size limit", func(t *testing.T) {
		_, err := ParseWithOptions(WithReader(bytes.NewReader([]byte(minimalYAML))), WithMaxFileSize(10))
		assert.ErrorIs(t, err, oaserrors.ErrSourceLoad)
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{32 << 20, "32.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.size))
	}
}

func TestMethodRank(t *testing.T) {
	assert.Less(t, MethodRank("get"), MethodRank("POST"))
	assert.Less(t, MethodRank("PATCH"), MethodRank("TRACE"))
	assert.Equal(t, len(HTTPMethods), MethodRank("CONNECT"))
}

func TestYAMLErrorLine(t *testing.T) {
	assert.Equal(t, 7, yamlErrorLine(errors.New("yaml: line 7: did not find expected key")))
	assert.Equal(t, 0, yamlErrorLine(errors.New("unexpected end of input")))
}
