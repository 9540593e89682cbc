package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/specdiff/internal/source"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI document on disk, or git:<rev>:<path>"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

func (in specInput) validate(side oaserrors.Side) error {
	count := 0
	for _, v := range []string{in.File, in.URL, in.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%s document: exactly one of file, url, or content must be provided (got %d)", side, count)
	}
	if in.File == "-" {
		return fmt.Errorf("%s document: stdin is not available to MCP tools", side)
	}
	return nil
}

// cacheKey identifies the input for the document cache. It is empty when
// the input cannot be cached.
func (in specInput) cacheKey(side oaserrors.Side) string {
	switch {
	case in.File != "":
		ref, err := source.ParseRef(in.File)
		if err != nil || ref.Kind != source.KindFile {
			return ""
		}
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s:file:%s:%d", side, absPath, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return fmt.Sprintf("%s:content:%s", side, hex.EncodeToString(h[:]))
	case in.URL != "":
		return fmt.Sprintf("%s:url:%s", side, in.URL)
	}
	return ""
}

// load returns the raw text of in and the name it should be reported under.
func (s *Server) load(ctx context.Context, in specInput, side oaserrors.Side) (string, []byte, error) {
	if err := in.validate(side); err != nil {
		return "", nil, err
	}
	if in.Content != "" {
		if int64(len(in.Content)) > s.opts.MaxInlineSize {
			return "", nil, fmt.Errorf("%s document: inline content size %d bytes exceeds maximum %s; use file input instead",
				side, len(in.Content), parser.FormatBytes(s.opts.MaxInlineSize))
		}
		return string(side) + "_content", []byte(in.Content), nil
	}

	loader, ref := s.loader, in.File
	if in.URL != "" {
		r, err := source.ParseRef(in.URL)
		if err != nil {
			return "", nil, err
		}
		if r.Kind != source.KindURL {
			return "", nil, fmt.Errorf("%s document: url must use http or https", side)
		}
		loader, ref = s.urlLoader, in.URL
	}
	doc, err := loader.Load(ctx, ref)
	if err != nil {
		return "", nil, err
	}
	return doc.Ref.String(), doc.Data, nil
}

// resolve loads and parses in as one side of a comparison, using the cache when possible.
func (s *Server) resolve(ctx context.Context, in specInput, side oaserrors.Side) (*parser.Document, error) {
	var key string
	if s.cache != nil {
		key = in.cacheKey(side)
	}
	if key != "" {
		if doc, ok := s.cache.Get(key); ok {
			return doc, nil
		}
	}

	name, data, err := s.load(ctx, in, side)
	if err != nil {
		return nil, err
	}
	doc, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithSourceName(name),
		parser.WithSide(side),
		parser.WithLogger(s.opts.Logger.With("side", string(side))),
	)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cache.Add(key, doc)
	}
	return doc, nil
}

// resolvePair resolves both documents, old first.
func (s *Server) resolvePair(ctx context.Context, oldIn, newIn specInput) (*parser.Document, *parser.Document, error) {
	oldDoc, err := s.resolve(ctx, oldIn, oaserrors.SideOld)
	if err != nil {
		return nil, nil, err
	}
	newDoc, err := s.resolve(ctx, newIn, oaserrors.SideNew)
	if err != nil {
		return nil, nil, err
	}
	return oldDoc, newDoc, nil
}
