// Package config loads specdiff settings from a config file, SPECDIFF_*
// environment variables, and defaults, in that order of precedence.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/oaserrors"
)

// EnvPrefix is the prefix of environment overrides, e.g. SPECDIFF_SERVER_ADDR.
const EnvPrefix = "SPECDIFF"

// Config holds all configuration for specdiff.
type Config struct {
	Log      LogConfig    `mapstructure:"log"`
	Server   ServerConfig `mapstructure:"server"`
	Fetch    FetchConfig  `mapstructure:"fetch"`
	Policy   PolicyConfig `mapstructure:"policy"`
	MCP      MCPConfig    `mapstructure:"mcp"`
	Validate bool         `mapstructure:"validate"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	// File enables rotation through lumberjack; empty logs to stderr
	File         string `mapstructure:"file"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
	MaxBackups   int    `mapstructure:"max_backups"`
	MaxAgeDays   int    `mapstructure:"max_age_days"`
	CompressLogs bool   `mapstructure:"compress"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	StaticDir      string        `mapstructure:"static_dir"`
	MaxUploadMB    int64         `mapstructure:"max_upload_mb"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	CacheSize      int           `mapstructure:"cache_size"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// FetchConfig controls loading documents from URLs.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// PolicyConfig selects the breaking-change policy.
type PolicyConfig struct {
	// Name is a built-in policy: default, strict, or lenient
	Name string `mapstructure:"name"`
	// File is a rule file layered over Name; the file's own base wins when set
	File string `mapstructure:"file"`
}

// MCPConfig holds MCP server defaults.
type MCPConfig struct {
	// DetailLimit caps the details returned per change by the compare tool
	DetailLimit int `mapstructure:"detail_limit"`
	// CacheSize bounds the parsed documents kept between tool calls; 0 disables the cache
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	// AllowPrivateIPs lets url inputs reach loopback and private networks
	AllowPrivateIPs bool `mapstructure:"allow_private_ips"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.rate_limit_rps", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.cache_size", 64)
	v.SetDefault("server.cache_ttl", 15*time.Minute)

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.max_retries", 2)

	v.SetDefault("policy.name", "default")
	v.SetDefault("policy.file", "")

	v.SetDefault("mcp.detail_limit", 50)
	v.SetDefault("mcp.cache_size", 10)
	v.SetDefault("mcp.cache_ttl", 15*time.Minute)
	v.SetDefault("mcp.allow_private_ips", false)

	v.SetDefault("validate", false)
}

// New returns a viper instance with defaults, the config file, and the
// environment wired up. Callers bind command-line flags to it before Load.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("specdiff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/specdiff")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &oaserrors.ConfigError{Option: "config", Value: cfgFile, Message: "reading config", Cause: err}
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Message: "unmarshaling config", Cause: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is New followed by Load.
func LoadFile(cfgFile string) (*Config, error) {
	v, err := New(cfgFile)
	if err != nil {
		return nil, err
	}
	return Load(v)
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return &oaserrors.ConfigError{Option: "log.format", Value: c.Log.Format, Message: "must be json or console"}
	}
	if _, ok := differ.PolicyByName(c.Policy.Name); !ok {
		return &oaserrors.ConfigError{Option: "policy.name", Value: c.Policy.Name, Message: "must be default, strict, or lenient"}
	}
	if c.Server.MaxUploadMB <= 0 {
		return &oaserrors.ConfigError{Option: "server.max_upload_mb", Value: c.Server.MaxUploadMB, Message: "must be positive"}
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return &oaserrors.ConfigError{Option: "server.rate_limit_rps", Value: c.Server.RateLimitRPS, Message: "must not be negative"}
	}
	return nil
}

// BuildPolicy returns the configured breaking-change policy.
func (c *Config) BuildPolicy() (differ.Policy, error) {
	if c.Policy.File != "" {
		return differ.LoadRules(c.Policy.File)
	}
	p, _ := differ.PolicyByName(c.Policy.Name)
	return p, nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}
