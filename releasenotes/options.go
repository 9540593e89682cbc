package releasenotes

import (
	"time"

	"github.com/erraggy/specdiff/oaserrors"
)

// Option is a function that configures release-note rendering
type Option func(*notesConfig) error

type notesConfig struct {
	date time.Time
}

func applyOptions(opts ...Option) (*notesConfig, error) {
	cfg := &notesConfig{date: time.Now()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithDate sets the date shown in the title.
// Default: the current local date
func WithDate(date time.Time) Option {
	return func(cfg *notesConfig) error {
		if date.IsZero() {
			return &oaserrors.ConfigError{Option: "date", Message: "date cannot be zero"}
		}
		cfg.date = date
		return nil
	}
}

// WithDateString parses date in DateLayout.
func WithDateString(date string) Option {
	return func(cfg *notesConfig) error {
		t, err := time.Parse(DateLayout, date)
		if err != nil {
			return &oaserrors.ConfigError{Option: "date", Value: date, Message: "expected YYYY-MM-DD", Cause: err}
		}
		cfg.date = t
		return nil
	}
}
