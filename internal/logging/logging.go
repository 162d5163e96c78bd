// Package logging builds the process logger from LogConfig. Handlers are
// log/slog text or JSON handlers wrapped in a RedactingHandler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// ParseLevel maps a configured level name to a slog.Level. Unknown names
// map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger for cfg. Output goes to cfg.File when set, else to
// w. The returned close function releases the log file and is safe to call
// when there is none.
//
// Logging never fails the caller: if the file cannot be opened the logger
// writes to w and records a warning.
func New(cfg types.LogConfig, w io.Writer) (*slog.Logger, func() error) {
	closeFn := func() error { return nil }
	out := w
	var openErr error

	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			openErr = err
		} else {
			out = f
			closeFn = f.Close
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, types.LogFormatJSON) {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(Redact(h))
	if openErr != nil {
		logger.Warn("log file unavailable, using fallback output", "file", cfg.File, "error", openErr)
	}
	return logger, closeFn
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
