package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"building-portal/internal/model"
	"building-portal/pkg/apierror"
)

// A handler abandoned by the timeout layer keeps running on its own
// goroutine and still records the actor after the exit log was written;
// both sides go through RequestLog so this stays safe under -race.
func TestTimeoutAbandonsSlowSessionValidation(t *testing.T) {
	t.Parallel()

	validator := &stubValidator{
		session: model.Session{SessionID: "sid", UserID: 7, Username: "admin"},
		delay:   60 * time.Millisecond,
	}

	pipe := NewPipeline(false)
	inner := pipe.Wrap(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}, RequireSession(validator))

	h := Logging(Timeout(5 * time.Millisecond)(inner))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/occupants", nil)
	req.Header.Set(SessionIDHeader, "sid")
	req.Header.Set(SessionTokenHeader, "tok")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), apierror.CodeRequestTimeout)

	// Let the abandoned goroutine finish its SetActor write.
	time.Sleep(100 * time.Millisecond)
}

func TestTimeoutPassesFastRequests(t *testing.T) {
	t.Parallel()

	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
