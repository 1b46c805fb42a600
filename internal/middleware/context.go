package middleware

import (
	"context"
	"sync"

	"building-portal/internal/logger"
	"building-portal/internal/model"
)

type contextKey string

const (
	requestLogKey contextKey = "request_log"
	sessionKey    contextKey = "session"
)

// RequestLog holds the per-request log context behind a mutex. The timeout
// layer hands the request to a separate goroutine and abandons it on the
// deadline, so the exit log in Logging and the actor enrichment in
// RequireSession can touch this concurrently.
type RequestLog struct {
	mu sync.Mutex
	c  logger.Context
}

func NewRequestLog(requestID string) *RequestLog {
	return &RequestLog{c: logger.Context{RequestID: requestID}}
}

// Snapshot returns a copy safe to read while the request goroutine may
// still be running.
func (l *RequestLog) Snapshot() logger.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c
}

// SetActor records the authenticated actor for the exit log and audit
// events.
func (l *RequestLog) SetActor(userID int64, username string, sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.UserID = userID
	l.c.Username = username
	l.c.SessionID = sessionID
}

func WithRequestLog(ctx context.Context, rl *RequestLog) context.Context {
	return context.WithValue(ctx, requestLogKey, rl)
}

// RequestLogFrom never returns nil; callers outside the logging middleware
// (tests, bare handlers) get a detached holder.
func RequestLogFrom(ctx context.Context) *RequestLog {
	if rl, ok := ctx.Value(requestLogKey).(*RequestLog); ok {
		return rl
	}
	return &RequestLog{}
}

func withSession(ctx context.Context, s model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the validated session attached by
// RequireSession, if any.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionKey).(model.Session)
	return s, ok
}
