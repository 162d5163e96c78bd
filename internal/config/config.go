// Package config loads the satchel configuration from config.yaml, the
// environment, and an optional .env file in the configuration directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/internal/logging"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the config file name inside the configuration directory.
	FileName = "config.yaml"
	// EnvFileName is the optional dotenv file inside the configuration directory.
	EnvFileName = ".env"

	envPrefix = "SATCHEL"
)

// Config keys.
const (
	KeyEnvironment    = "environment"
	KeyDataDir        = "data_dir"
	KeyServerHost     = "server.host"
	KeyServerPort     = "server.port"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyLogFile        = "log.file"
	KeySecretKey      = "security.secret_key"
	KeyRateLimitRPS   = "rate_limit.rps"
	KeyRateLimitBurst = "rate_limit.burst"
)

// legacyEnv lists the unprefixed variable names still honored for each key.
var legacyEnv = map[string]string{
	KeyEnvironment: "ENVIRONMENT",
	KeyServerHost:  "API_HOST",
	KeyServerPort:  "API_PORT",
	KeyLogLevel:    "LOG_LEVEL",
	KeyLogFile:     "LOG_FILE",
	KeySecretKey:   "SECRET_KEY",
}

// Default returns the configuration used when nothing overrides it.
func Default() types.Config {
	return types.Config{
		Environment: "development",
		Server:      types.ServerConfig{Host: "localhost", Port: 8000},
		Log:         types.LogConfig{Level: "info", Format: types.LogFormatText},
		Security:    types.SecurityConfig{SecretKey: "your-secret-key-here"},
		RateLimit:   types.RateLimitConfig{RPS: 0, Burst: 1},
	}
}

// Load builds the configuration for configDir. Values come from, in
// increasing priority: defaults, config.yaml, .env, and the process
// environment. A missing config.yaml or .env is not an error. The result is
// validated before it is returned.
func Load(configDir string) (*types.Config, error) {
	if err := loadDotEnv(configDir); err != nil {
		return nil, err
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyEnvironment, d.Environment)
	v.SetDefault(KeyDataDir, d.DataDir)
	v.SetDefault(KeyServerHost, d.Server.Host)
	v.SetDefault(KeyServerPort, d.Server.Port)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeySecretKey, d.Security.SecretKey)
	v.SetDefault(KeyRateLimitRPS, d.RateLimit.RPS)
	v.SetDefault(KeyRateLimitBurst, d.RateLimit.Burst)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit names are checked in order, so the prefixed one wins.
	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, legacy)
	}
	return v
}

// loadDotEnv loads <configDir>/.env without overriding variables that are
// already set.
func loadDotEnv(configDir string) error {
	path := filepath.Join(configDir, EnvFileName)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", EnvFileName, err)
	}
	return nil
}

// EnsureFile writes a config.yaml holding cfg into configDir if the file
// does not exist yet. It reports whether a file was written.
func EnsureFile(configDir string, cfg types.Config) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, FileName)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}

// Redacted returns a copy of cfg safe to print.
func Redacted(cfg types.Config) types.Config {
	if cfg.Security.SecretKey != "" {
		cfg.Security.SecretKey = logging.Redacted
	}
	return cfg
}
