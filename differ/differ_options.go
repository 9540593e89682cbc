package differ

import (
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

// Option is a function that configures a comparison
type Option func(*compareConfig) error

type compareConfig struct {
	policy          Policy
	logger          parser.Logger
	strictAlignment bool
}

func applyOptions(opts ...Option) (*compareConfig, error) {
	cfg := &compareConfig{policy: DefaultPolicy{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (cfg *compareConfig) differ() *Differ {
	return &Differ{
		Policy:          cfg.policy,
		Logger:          cfg.logger,
		StrictAlignment: cfg.strictAlignment,
	}
}

// Compare compares two parsed documents using functional options.
//
// Example:
//
//	report, err := differ.Compare(oldDoc, newDoc,
//	    differ.WithPolicy(differ.StrictPolicy{}),
//	)
func Compare(oldDoc, newDoc *parser.Document, opts ...Option) (*Report, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.differ().Compare(oldDoc, newDoc)
}

// CompareBytes parses and compares two documents using functional options.
func CompareBytes(oldData, newData []byte, opts ...Option) (*Report, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.differ().CompareBytes(oldData, newData)
}

// WithPolicy sets the breaking-change policy.
// Default: DefaultPolicy
func WithPolicy(p Policy) Option {
	return func(cfg *compareConfig) error {
		if p == nil {
			return &oaserrors.ConfigError{Option: "policy", Message: "policy cannot be nil"}
		}
		cfg.policy = p
		return nil
	}
}

// WithLogger sets a structured logger.
func WithLogger(l parser.Logger) Option {
	return func(cfg *compareConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithStrictAlignment makes duplicate operations an error instead of a warning.
// Default: false
func WithStrictAlignment(enabled bool) Option {
	return func(cfg *compareConfig) error {
		cfg.strictAlignment = enabled
		return nil
	}
}
