package types

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		Environment: "development",
		Server:      ServerConfig{Host: "localhost", Port: 8000},
		Log:         LogConfig{Level: "info", Format: LogFormatText},
		Security:    SecurityConfig{SecretKey: "k"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "zero port returns ErrPortInvalid",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: ErrPortInvalid,
		},
		{
			name:    "port above range returns ErrPortInvalid",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: ErrPortInvalid,
		},
		{
			name:    "upper-case level is accepted",
			mutate:  func(c *Config) { c.Log.Level = "INFO" },
			wantErr: nil,
		},
		{
			name:    "unknown level returns ErrLogLevelUnknown",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "json format is valid",
			mutate:  func(c *Config) { c.Log.Format = "JSON" },
			wantErr: nil,
		},
		{
			name:    "unknown format returns ErrLogFormatUnknown",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrLogFormatUnknown,
		},
		{
			name:    "negative rps returns ErrRateLimitInvalid",
			mutate:  func(c *Config) { c.RateLimit.RPS = -1 },
			wantErr: ErrRateLimitInvalid,
		},
		{
			name:    "positive rps without burst returns ErrRateLimitInvalid",
			mutate:  func(c *Config) { c.RateLimit = RateLimitConfig{RPS: 5} },
			wantErr: ErrRateLimitInvalid,
		},
		{
			name:    "positive rps with burst is valid",
			mutate:  func(c *Config) { c.RateLimit = RateLimitConfig{RPS: 5, Burst: 10} },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
