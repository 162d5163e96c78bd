package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Redacted replaces the value of any attribute whose key looks secret.
const Redacted = "[REDACTED]"

var sensitiveKeyParts = []string{"secret", "password", "passphrase", "token", "auth"}

// RedactingHandler wraps another slog.Handler and replaces sensitive
// attribute values before they reach it.
type RedactingHandler struct {
	next slog.Handler
}

// Redact wraps next. It returns nil for a nil handler.
func Redact(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}
	return &RedactingHandler{next: next}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(RedactAttr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = RedactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(clean)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

// RedactAttr returns attr with its value replaced when the key is
// sensitive. Groups are redacted member by member.
func RedactAttr(attr slog.Attr) slog.Attr {
	if IsSensitiveKey(attr.Key) {
		return slog.String(attr.Key, Redacted)
	}
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		clean := make([]any, len(group))
		for i, a := range group {
			clean[i] = RedactAttr(a)
		}
		return slog.Group(attr.Key, clean...)
	}
	return attr
}

// IsSensitiveKey reports whether key names a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
