// Package oaserrors provides structured error types for the specdiff library.
//
// Import path: github.com/erraggy/specdiff/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell a malformed input apart from an unsupported one and to
// report which side of a comparison was at fault.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures
//   - [UnsupportedVersionError]: the document is not OpenAPI 3.x
//   - [AlignmentAmbiguityError]: an operation is declared twice in one document
//   - [SourceError]: a file, URL, or git revision could not be read
//   - [ConfigError]: invalid options or policy rules
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrUnsupportedVersion]: Matches any [UnsupportedVersionError]
//   - [ErrAlignmentAmbiguity]: Matches any [AlignmentAmbiguityError]
//   - [ErrSourceLoad]: Matches any [SourceError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Sides
//
// Errors raised while preparing a comparison carry a [Side] naming the
// offending input:
//
//	_, err := differ.CompareBytes(oldData, newData)
//	var pe *oaserrors.ParseError
//	if errors.As(err, &pe) {
//	    fmt.Printf("the %s document is malformed: %v\n", pe.Side, pe)
//	}
//
// [AlignmentAmbiguityError] is recovered by keeping the last declaration; it
// appears in parser warnings instead of being returned.
package oaserrors
