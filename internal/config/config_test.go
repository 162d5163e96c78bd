package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var envNames = []string{
	"SATCHEL_ENVIRONMENT", "SATCHEL_DATA_DIR", "SATCHEL_SERVER_HOST", "SATCHEL_SERVER_PORT",
	"SATCHEL_LOG_LEVEL", "SATCHEL_LOG_FORMAT", "SATCHEL_LOG_FILE", "SATCHEL_SECURITY_SECRET_KEY",
	"SATCHEL_RATE_LIMIT_RPS", "SATCHEL_RATE_LIMIT_BURST",
	"ENVIRONMENT", "API_HOST", "API_PORT", "LOG_LEVEL", "LOG_FILE", "SECRET_KEY",
}

// clearEnv unsets every variable Load reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
environment: staging
data_dir: /var/lib/satchel
server:
  host: 0.0.0.0
  port: 9001
log:
  level: debug
  format: json
rate_limit:
  rps: 5
  burst: 10
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "/var/lib/satchel", cfg.DataDir)
	assert.Equal(t, types.ServerConfig{Host: "0.0.0.0", Port: 9001}, cfg.Server)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, types.LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, types.RateLimitConfig{RPS: 5, Burst: 10}, cfg.RateLimit)
	assert.Equal(t, "your-secret-key-here", cfg.Security.SecretKey, "unset keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *types.Config)
	}{
		{
			name: "prefixed variable",
			env:  map[string]string{"SATCHEL_SERVER_PORT": "9100"},
			check: func(t *testing.T, cfg *types.Config) {
				assert.Equal(t, 9100, cfg.Server.Port)
			},
		},
		{
			name: "legacy variable",
			env:  map[string]string{"API_PORT": "9200", "LOG_LEVEL": "error", "SECRET_KEY": "s3cr3t"},
			check: func(t *testing.T, cfg *types.Config) {
				assert.Equal(t, 9200, cfg.Server.Port)
				assert.Equal(t, "error", cfg.Log.Level)
				assert.Equal(t, "s3cr3t", cfg.Security.SecretKey)
			},
		},
		{
			name: "prefixed wins over legacy",
			env:  map[string]string{"SATCHEL_SERVER_HOST": "prefixed", "API_HOST": "legacy"},
			check: func(t *testing.T, cfg *types.Config) {
				assert.Equal(t, "prefixed", cfg.Server.Host)
			},
		},
		{
			name: "nested key without legacy name",
			env:  map[string]string{"SATCHEL_RATE_LIMIT_RPS": "2.5", "SATCHEL_RATE_LIMIT_BURST": "4"},
			check: func(t *testing.T, cfg *types.Config) {
				assert.Equal(t, types.RateLimitConfig{RPS: 2.5, Burst: 4}, cfg.RateLimit)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, FileName, "server:\n  port: 9001\n")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(dir)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, EnvFileName, "ENVIRONMENT=from-dotenv\nAPI_HOST=dotenv-host\n")
	t.Setenv("API_HOST", "process-host")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Environment)
	assert.Equal(t, "process-host", cfg.Server.Host, ".env never overrides the process environment")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"port out of range", "server:\n  port: 70000\n", types.ErrPortInvalid},
		{"unknown level", "log:\n  level: loud\n", types.ErrLogLevelUnknown},
		{"unknown format", "log:\n  format: xml\n", types.ErrLogFormatUnknown},
		{"burst missing", "rate_limit:\n  rps: 1\n  burst: 0\n", types.ErrRateLimitInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.content)

			_, err := Load(dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, FileName, "server: [unclosed\n")

		_, err := Load(dir)
		assert.ErrorContains(t, err, "read config")
	})
}

func TestEnsureFile(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested", "config")

	written, err := EnsureFile(dir, Default())
	require.NoError(t, err)
	assert.True(t, written)

	written, err = EnsureFile(dir, types.Config{Environment: "ignored"})
	require.NoError(t, err)
	assert.False(t, written, "existing file is kept")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	out := Redacted(cfg)
	assert.Equal(t, "[REDACTED]", out.Security.SecretKey)
	assert.Equal(t, "your-secret-key-here", cfg.Security.SecretKey, "input untouched")

	cfg.Security.SecretKey = ""
	assert.Empty(t, Redacted(cfg).Security.SecretKey)
}
