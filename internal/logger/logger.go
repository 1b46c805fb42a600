package logger

import (
	"log/slog"
	"os"
)

// Context is the per-request record threaded through a request's lifetime.
// Empty fields are omitted from the emitted record.
type Context struct {
	RequestID string
	UserID    int64
	SessionID string
	Username  string
	Action    string
	Resource  string
}

func (c Context) attrs() []any {
	attrs := make([]any, 0, 12)
	if c.RequestID != "" {
		attrs = append(attrs, "request_id", c.RequestID)
	}
	if c.UserID != 0 {
		attrs = append(attrs, "user_id", c.UserID)
	}
	if c.SessionID != "" {
		attrs = append(attrs, "session_id", c.SessionID)
	}
	if c.Username != "" {
		attrs = append(attrs, "username", c.Username)
	}
	if c.Action != "" {
		attrs = append(attrs, "action", c.Action)
	}
	if c.Resource != "" {
		attrs = append(attrs, "resource", c.Resource)
	}
	return attrs
}

// SetupDefault installs the process-wide slog logger. Development gets the
// colored pretty handler at debug level; anything else gets one JSON object
// per line at info level, suitable for downstream collection.
func SetupDefault(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func LogRequest(method string, path string, ctx Context) {
	attrs := append([]any{"method", method, "path", path}, ctx.attrs()...)
	slog.Info("request", attrs...)
}

func LogResponse(method string, path string, status int, durationMs int64, ctx Context) {
	attrs := append([]any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", durationMs,
	}, ctx.attrs()...)

	switch {
	case status >= 500:
		slog.Error("response", attrs...)
	case status >= 400:
		slog.Warn("response", attrs...)
	default:
		slog.Info("response", attrs...)
	}
}

func LogAudit(action string, resource string, ctx Context) {
	attrs := append([]any{"audit", true, "action", action, "resource", resource}, ctx.attrs()...)
	slog.Info("audit", attrs...)
}

// LogSecurity records a security-relevant event. Callers must never pass
// credentials in metadata.
func LogSecurity(event string, ctx Context, metadata map[string]any) {
	attrs := append([]any{"security", true, "event", event}, ctx.attrs()...)
	for k, v := range metadata {
		attrs = append(attrs, k, v)
	}
	slog.Warn("security", attrs...)
}
