package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitGeneralBudget(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(3, 100)
	h := limiter.Handler(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 10; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/occupants", nil)
		req.RemoteAddr = "203.0.113.10:1234"
		h.ServeHTTP(last, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.Equal(t, "60", last.Header().Get("Retry-After"))
}

func TestRateLimitAuthBudgetIsTighter(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(1000, 2)
	h := limiter.Handler(okHandler())

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		req.RemoteAddr = "203.0.113.11:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Contains(t, codes, http.StatusTooManyRequests)

	// The same client still has general budget left.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/occupants", nil)
	req.RemoteAddr = "203.0.113.11:1234"
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitClientsAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimitMiddleware(1, 100)
	h := limiter.Handler(okHandler())

	exhaust := func(addr string) int {
		var code int
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/occupants", nil)
			req.RemoteAddr = addr
			h.ServeHTTP(rec, req)
			code = rec.Code
		}
		return code
	}

	require.Equal(t, http.StatusTooManyRequests, exhaust("203.0.113.12:1000"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/occupants", nil)
	req.RemoteAddr = "203.0.113.13:1000"
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractClientIP(t *testing.T) {
	t.Parallel()

	t.Run("forwarded-for wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.2")
		require.Equal(t, "203.0.113.50", extractClientIP(req))
	})

	t.Run("real-ip is the fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Real-IP", "203.0.113.51")
		require.Equal(t, "203.0.113.51", extractClientIP(req))
	})

	t.Run("remote addr without headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.52:1234"
		require.Equal(t, "203.0.113.52", extractClientIP(req))
	})
}
