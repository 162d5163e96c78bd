package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(types.LogConfig{Level: "warn", Format: "text"}, &buf)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewJSONRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(types.LogConfig{Level: "info", Format: "json"}, &buf)
	defer closeFn()

	logger.With("api_token", "t0k").Info("config",
		"secret_key", "hunter2",
		"host", "localhost",
		slog.Group("db", "password", "pw", "name", "main"),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, Redacted, rec["secret_key"])
	assert.Equal(t, Redacted, rec["api_token"])
	assert.Equal(t, "localhost", rec["host"])

	db, ok := rec["db"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, Redacted, db["password"])
	assert.Equal(t, "main", db["name"])
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "application.log")
	var fallback bytes.Buffer

	logger, closeFn := New(types.LogConfig{Level: "info", Format: "text", File: path}, &fallback)
	logger.Info("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, fallback.String())
}

func TestNewFallsBackWhenFileUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var fallback bytes.Buffer
	logger, closeFn := New(types.LogConfig{Level: "info", File: filepath.Join(blocker, "app.log")}, &fallback)
	defer closeFn()

	logger.Info("still logged")
	assert.Contains(t, fallback.String(), "log file unavailable")
	assert.Contains(t, fallback.String(), "still logged")
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey("SECRET_KEY"))
	assert.True(t, IsSensitiveKey("Authorization"))
	assert.False(t, IsSensitiveKey("environment"))
}

func TestRedactNil(t *testing.T) {
	assert.Nil(t, Redact(nil))
}
