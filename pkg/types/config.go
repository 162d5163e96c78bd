package types

import (
	"errors"
	"strings"
)

// Config is the process configuration. It is built once at startup by
// internal/config and passed by pointer to the components that need it.
type Config struct {
	Environment string          `mapstructure:"environment" yaml:"environment" json:"environment"`
	DataDir     string          `mapstructure:"data_dir" yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
	Server      ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
	Log         LogConfig       `mapstructure:"log" yaml:"log" json:"log"`
	Security    SecurityConfig  `mapstructure:"security" yaml:"security" json:"security"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
}

// ServerConfig holds the address handlers report themselves under. No
// listener is started.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port int    `mapstructure:"port" yaml:"port" json:"port"`
}

// LogConfig selects the slog handler. An empty File logs to stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// SecurityConfig holds secrets. Never log these directly; the logging
// handler redacts attributes named like secrets.
type SecurityConfig struct {
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key" json:"secret_key"`
}

// RateLimitConfig configures per-route token buckets. RPS 0 disables
// limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps" json:"rps"`
	Burst int     `mapstructure:"burst" yaml:"burst" json:"burst"`
}

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config validation errors.
var (
	ErrPortInvalid      = errors.New("port must be between 1 and 65535")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
	ErrRateLimitInvalid = errors.New("rate limit must be non-negative with positive burst")
)

// knownLogLevels lists the levels Validate accepts, lower-cased.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks that the Config is well-formed and returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrPortInvalid
	}
	if !knownLogLevels[strings.ToLower(c.Log.Level)] {
		return ErrLogLevelUnknown
	}
	switch strings.ToLower(c.Log.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return ErrLogFormatUnknown
	}
	if c.RateLimit.RPS < 0 || (c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1) {
		return ErrRateLimitInvalid
	}
	return nil
}
