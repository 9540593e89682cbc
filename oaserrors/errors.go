package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedVersion indicates a document does not declare a supported OpenAPI version.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrAlignmentAmbiguity indicates an operation was declared more than once in a document.
	ErrAlignmentAmbiguity = errors.New("alignment ambiguity")

	// ErrSourceLoad indicates a document source (file, URL, git revision) could not be read.
	ErrSourceLoad = errors.New("source load error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Side names which input of a comparison an error belongs to.
type Side string

const (
	// SideOld is the baseline document.
	SideOld Side = "old"
	// SideNew is the revised document.
	SideNew Side = "new"
)

func sidePrefix(s Side) string {
	if s == "" {
		return ""
	}
	return string(s) + " document: "
}

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON syntax errors and a non-object document root.
type ParseError struct {
	// Side identifies the comparison input that failed, empty outside a comparison
	Side Side
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := sidePrefix(e.Side) + "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnsupportedVersionError reports a document whose declared version is not OpenAPI 3.x.
type UnsupportedVersionError struct {
	// Side identifies the comparison input, empty outside a comparison
	Side Side
	// Path is the file path or source identifier
	Path string
	// Version is the declared version string, empty when none was declared
	Version string
}

// Error returns a human-readable error message.
func (e *UnsupportedVersionError) Error() string {
	msg := sidePrefix(e.Side) + "unsupported version"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Version == "" {
		return msg + ": no openapi version declared"
	}
	return msg + fmt.Sprintf(": %q (OpenAPI 3.x required)", e.Version)
}

// Is reports whether target matches this error type.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// AlignmentAmbiguityError reports an operation declared more than once in one document.
// The last declaration wins, so this is normally surfaced as a warning rather than returned.
type AlignmentAmbiguityError struct {
	// Side identifies the comparison input, empty outside a comparison
	Side Side
	// Method is the upper-case HTTP method
	Method string
	// Path is the URL template
	Path string
	// Count is how many times the operation was declared
	Count int
}

// Error returns a human-readable error message.
func (e *AlignmentAmbiguityError) Error() string {
	return fmt.Sprintf("%soperation %s %s declared %d times; using the last declaration",
		sidePrefix(e.Side), e.Method, e.Path, e.Count)
}

// Is reports whether target matches this error type.
func (e *AlignmentAmbiguityError) Is(target error) bool {
	return target == ErrAlignmentAmbiguity
}

// SourceError represents a failure to read a document from its source.
type SourceError struct {
	// Source is the file path, URL, or git reference that was requested
	Source string
	// Kind is "file", "url", "git" or "stdin"
	Kind string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SourceError) Error() string {
	msg := "failed to load"
	if e.Kind != "" {
		msg += " " + e.Kind
	}
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceLoad
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, malformed policy rules, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// SideOf reports which comparison input err belongs to, or "" if it carries none.
func SideOf(err error) Side {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Side
	}
	var ve *UnsupportedVersionError
	if errors.As(err, &ve) {
		return ve.Side
	}
	var ae *AlignmentAmbiguityError
	if errors.As(err, &ae) {
		return ae.Side
	}
	return ""
}
