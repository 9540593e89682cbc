package parser

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/specdiff"
	"github.com/erraggy/specdiff/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	side        oaserrors.Side
	userAgent   string
	httpClient  *http.Client
	logger      Logger
	maxFileSize int64

	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithSide(oaserrors.SideOld),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Side:        cfg.side,
		UserAgent:   cfg.userAgent,
		HTTPClient:  cfg.httpClient,
		Logger:      cfg.logger,
		MaxFileSize: cfg.maxFileSize,
	}

	var doc *Document
	switch {
	case cfg.filePath != nil:
		doc, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		doc, err = p.ParseReader(cfg.reader)
	default:
		doc, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		doc.SourcePath = *cfg.sourceName
	}
	return doc, nil
}

// ParseFile parses the document at path (a file or http(s) URL) with default settings.
func ParseFile(path string) (*Document, error) {
	return ParseWithOptions(WithFilePath(path))
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		userAgent: specdiff.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	for _, set := range []bool{cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil} {
		if set {
			sources++
		}
	}
	switch sources {
	case 0:
		return nil, &oaserrors.ConfigError{Option: "input", Message: "must specify an input source (use WithFilePath, WithReader, or WithBytes)"}
	case 1:
		return cfg, nil
	default:
		return nil, &oaserrors.ConfigError{Option: "input", Message: "must specify exactly one input source"}
	}
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSide labels the document as one input of a comparison.
// Errors and warnings produced while parsing carry the side.
func WithSide(side oaserrors.Side) Option {
	return func(cfg *parseConfig) error {
		cfg.side = side
		return nil
	}
}

// WithSourceName overrides Document.SourcePath, useful for bytes read from an upload.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "specdiff/<version>"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithMaxFileSize limits how many bytes are read from the input source.
// Default: 32MiB
func WithMaxFileSize(n int64) Option {
	return func(cfg *parseConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "max file size", Value: n, Message: "must not be negative"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}
