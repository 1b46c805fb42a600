package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"building-portal/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// Logging is the outermost observability layer: it assigns the request id,
// logs entry before any business logic runs and logs the outcome with
// status and duration after everything inside has finished.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rl := NewRequestLog(requestID)
		r = r.WithContext(WithRequestLog(r.Context(), rl))

		logger.LogRequest(r.Method, r.URL.Path, rl.Snapshot())

		started := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// The session layer may have enriched the record with the actor. An
		// abandoned timed-out handler can still be writing, hence Snapshot.
		logger.LogResponse(r.Method, r.URL.Path, wrapped.status, time.Since(started).Milliseconds(), rl.Snapshot())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.status = statusCode
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}
