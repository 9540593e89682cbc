package mcpserver

import (
	"time"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/internal/config"
	"github.com/erraggy/specdiff/internal/source"
	"github.com/erraggy/specdiff/parser"
)

// Defaults for zero Options fields.
const (
	DefaultDetailLimit   = 50
	DefaultCacheTTL      = 15 * time.Minute
	DefaultMaxInlineSize = 10 << 20
)

// Options configures a Server.
type Options struct {
	// Policy classifies differences. Default: differ.DefaultPolicy
	Policy differ.Policy
	// Loader reads file, git, and url inputs. Default: a zero source.Loader
	Loader *source.Loader
	// Logger receives parse and compare diagnostics. Default: parser.NopLogger
	Logger parser.Logger

	// DetailLimit is the default per-operation detail cap for compare
	DetailLimit int
	// CacheSize bounds cached parsed documents; 0 disables caching
	CacheSize int
	CacheTTL  time.Duration
	// MaxInlineSize bounds content inputs, in bytes
	MaxInlineSize int64
	// AllowPrivateIPs disables the loopback and private network guard on url inputs
	AllowPrivateIPs bool
}

// OptionsFromConfig maps the mcp section of cfg onto Options.
func OptionsFromConfig(cfg config.MCPConfig) Options {
	return Options{
		DetailLimit:     cfg.DetailLimit,
		CacheSize:       cfg.CacheSize,
		CacheTTL:        cfg.CacheTTL,
		AllowPrivateIPs: cfg.AllowPrivateIPs,
	}
}

func (o Options) withDefaults() Options {
	if o.Policy == nil {
		o.Policy = differ.DefaultPolicy{}
	}
	if o.Loader == nil {
		o.Loader = &source.Loader{}
	}
	if o.Logger == nil {
		o.Logger = parser.NopLogger{}
	}
	if o.DetailLimit <= 0 {
		o.DetailLimit = DefaultDetailLimit
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.MaxInlineSize <= 0 {
		o.MaxInlineSize = DefaultMaxInlineSize
	}
	return o
}
