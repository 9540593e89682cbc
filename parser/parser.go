package parser

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/specdiff"
	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/oaserrors"
)

// DefaultMaxFileSize bounds how much data Parse and ParseReader will read.
const DefaultMaxFileSize int64 = 32 << 20

// Parser handles OpenAPI document parsing
type Parser struct {
	// Side labels errors and warnings with the comparison input being parsed
	Side oaserrors.Side
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum number of bytes read from a file, URL, or reader.
	// Default: 32MiB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: specdiff.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Document is a parsed OpenAPI 3.x document.
//
// Callers should treat a Document as read-only. Its values are shared with
// every comparison it takes part in.
type Document struct {
	// SourcePath is the file path, URL, or synthetic name the document was read from
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Side is the comparison input this document was parsed as, if any
	Side oaserrors.Side
	// Version is the declared OpenAPI version string (e.g., "3.0.3", "3.1.0")
	Version string
	// Root is the whole document as an ordered value tree
	Root jsonvalue.Value
	// Raw is the exact text that was parsed
	Raw []byte
	// Warnings contains non-fatal issues found while indexing the document
	Warnings []string
	// Ambiguities lists operations declared more than once; the last declaration was kept
	Ambiguities []*oaserrors.AlignmentAmbiguityError
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64

	ops     []Operation
	opIndex map[OperationKey]int
}

// RawText returns the document text exactly as it was read.
func (d *Document) RawText() string {
	return string(d.Raw)
}

// Parse parses an OpenAPI document from a file path or http(s) URL
func (p *Parser) Parse(specPath string) (*Document, error) {
	var data []byte
	var err error
	var format SourceFormat

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = p.readFile(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	doc, err := p.parse(data, specPath)
	if err != nil {
		return nil, err
	}
	doc.LoadTime = loadTime
	if format != SourceFormatUnknown {
		doc.SourceFormat = format
	}
	return doc, nil
}

func (p *Parser) readFile(specPath string) ([]byte, error) {
	f, err := os.Open(specPath) //nolint:gosec // path is caller-provided input
	if err != nil {
		return nil, &oaserrors.SourceError{Source: specPath, Kind: "file", Cause: err}
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := readLimited(f, p.maxFileSize())
	if err != nil {
		return nil, &oaserrors.SourceError{Source: specPath, Kind: "file", Cause: err}
	}
	return data, nil
}

// ParseReader parses an OpenAPI document from an io.Reader
// Note: since there is no actual Document.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	loadStart := time.Now()
	data, err := readLimited(r, p.maxFileSize())
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &oaserrors.SourceError{Kind: "reader", Cause: err}
	}
	doc, err := p.parse(data, syntheticName("ParseReader", data))
	if err != nil {
		return nil, err
	}
	doc.LoadTime = loadTime
	return doc, nil
}

// ParseBytes parses an OpenAPI document from a byte slice
// Note: since there is no actual Document.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	return p.parse(data, syntheticName("ParseBytes", data))
}

func syntheticName(method string, data []byte) string {
	if detectFormatFromContent(data) == SourceFormatJSON {
		return method + ".json"
	}
	return method + ".yaml"
}

var errTooLarge = errors.New("input exceeds maximum size")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %s", errTooLarge, FormatBytes(limit))
	}
	return data, nil
}

func (p *Parser) parse(data []byte, sourcePath string) (*Document, error) {
	log := p.log().With("source", sourcePath)

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		line := yamlErrorLine(err)
		return nil, &oaserrors.ParseError{
			Side:    p.Side,
			Path:    sourcePath,
			Line:    line,
			Message: "invalid YAML/JSON",
			Cause:   err,
		}
	}

	root, err := jsonvalue.FromNode(&node)
	if err != nil {
		pe := &oaserrors.ParseError{Side: p.Side, Path: sourcePath, Cause: err}
		var ne *jsonvalue.NodeError
		if errors.As(err, &ne) {
			pe.Line, pe.Column, pe.Cause, pe.Message = ne.Line, ne.Column, nil, ne.Message
		}
		return nil, pe
	}
	switch root.Kind() {
	case jsonvalue.KindAbsent:
		return nil, &oaserrors.ParseError{Side: p.Side, Path: sourcePath, Message: "document is empty"}
	case jsonvalue.KindObject:
	default:
		return nil, &oaserrors.ParseError{
			Side:    p.Side,
			Path:    sourcePath,
			Message: fmt.Sprintf("document root must be an object, got %s", root.Kind()),
		}
	}

	declared, err := detectVersion(root)
	if err != nil {
		var ve *oaserrors.UnsupportedVersionError
		if errors.As(err, &ve) {
			ve.Side, ve.Path = p.Side, sourcePath
		}
		return nil, err
	}

	doc := &Document{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		Side:         p.Side,
		Version:      declared,
		Root:         root,
		Raw:          data,
		SourceSize:   int64(len(data)),
	}
	doc.indexOperations(log)

	log.Debug("parsed document",
		"version", doc.Version,
		"format", doc.SourceFormat,
		"operations", len(doc.ops),
		"size", FormatBytes(doc.SourceSize))
	return doc, nil
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the line number from a YAML syntax error message, or 0.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
