//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOccupantCRUD(t *testing.T) {
	t.Parallel()
	server := newPortalServer(t)
	pair := server.login(t, "admin", "admin123")

	t.Run("requires a session", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/occupants", sessionPair{}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "UNAUTHORIZED", errorCode(t, body))
	})

	t.Run("lists seeded occupants with filters", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/occupants?property_id=1", pair, nil)
		require.Equal(t, http.StatusOK, status)

		var parsed struct {
			Occupants []struct {
				Name       string `json:"name"`
				PropertyID int64  `json:"property_id"`
			} `json:"occupants"`
		}
		require.NoError(t, json.Unmarshal(body, &parsed))
		require.Len(t, parsed.Occupants, 2)
		for _, o := range parsed.Occupants {
			require.Equal(t, int64(1), o.PropertyID)
		}
	})

	t.Run("malformed filter is a validation error", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/occupants?property_id=abc", pair, nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
	})

	t.Run("create update delete round trip", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/api/v1/occupants", pair, map[string]any{
			"name":        "Casey Newman",
			"email":       "casey@example.com",
			"property_id": 3,
			"unit_id":     305,
		})
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			OccupantID int64 `json:"occupant_id"`
		}
		require.NoError(t, json.Unmarshal(body, &created))
		require.Positive(t, created.OccupantID)

		status, _ = server.request(t, http.MethodPut, "/api/v1/occupants", pair, map[string]any{
			"occupant_id": created.OccupantID,
			"phone":       "555-0199",
		})
		require.Equal(t, http.StatusOK, status)

		path := fmt.Sprintf("/api/v1/occupants?occupant_id=%d", created.OccupantID)
		status, _ = server.request(t, http.MethodDelete, path, pair, nil)
		require.Equal(t, http.StatusOK, status)

		status, body = server.request(t, http.MethodDelete, path, pair, nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "NOT_FOUND", errorCode(t, body))
	})

	t.Run("invalid payload enumerates every field", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/api/v1/occupants", pair, map[string]any{
			"email": "not-an-address",
		})
		require.Equal(t, http.StatusBadRequest, status)

		var parsed struct {
			Error struct {
				Code    string `json:"code"`
				Details []struct {
					Field string `json:"field"`
				} `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body, &parsed))
		require.Equal(t, "VALIDATION_ERROR", parsed.Error.Code)
		// Development mode exposes the field list.
		require.Len(t, parsed.Error.Details, 3)
	})

	t.Run("PATCH is method not allowed", func(t *testing.T) {
		status, body := server.request(t, http.MethodPatch, "/api/v1/occupants", pair, nil)
		require.Equal(t, http.StatusMethodNotAllowed, status)
		require.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, body))
	})
}

func TestMaintenanceFlow(t *testing.T) {
	t.Parallel()
	server := newPortalServer(t)
	pair := server.login(t, "mlease", "lease123")

	t.Run("status filter on seeded rows", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/maintenance-requests?status=open", pair, nil)
		require.Equal(t, http.StatusOK, status)

		var parsed struct {
			Requests []struct {
				Status string `json:"status"`
			} `json:"requests"`
		}
		require.NoError(t, json.Unmarshal(body, &parsed))
		require.Len(t, parsed.Requests, 2)
	})

	t.Run("create then resolve", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/api/v1/maintenance-requests", pair, map[string]any{
			"property_id": 2,
			"unit_id":     204,
			"tenant_name": "Morgan Lee",
			"description": "Radiator knocks at night",
			"priority":    "high",
		})
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			RequestID int64 `json:"request_id"`
		}
		require.NoError(t, json.Unmarshal(body, &created))

		status, _ = server.request(t, http.MethodPut, "/api/v1/maintenance-requests", pair, map[string]any{
			"request_id": created.RequestID,
			"status":     "resolved",
		})
		require.Equal(t, http.StatusOK, status)

		status, body = server.request(t, http.MethodGet, "/api/v1/maintenance-requests?status=resolved", pair, nil)
		require.Equal(t, http.StatusOK, status)

		var listed struct {
			Requests []struct {
				RequestID int64 `json:"request_id"`
			} `json:"requests"`
		}
		require.NoError(t, json.Unmarshal(body, &listed))
		require.Len(t, listed.Requests, 1)
		require.Equal(t, created.RequestID, listed.Requests[0].RequestID)
	})
}

func TestAuditTrail(t *testing.T) {
	t.Parallel()
	server := newPortalServer(t)
	admin := server.login(t, "admin", "admin123")
	renter := server.login(t, "jrenter", "renter123")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/audit", renter, nil)
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "FORBIDDEN", errorCode(t, body))
	})

	t.Run("mutations show up for the admin", func(t *testing.T) {
		status, _ := server.request(t, http.MethodPost, "/api/v1/occupants", admin, map[string]any{
			"name":        "Audited Person",
			"email":       "audited@example.com",
			"property_id": 4,
		})
		require.Equal(t, http.StatusCreated, status)

		// The recorder persists asynchronously.
		require.Eventually(t, func() bool {
			status, body := server.request(t, http.MethodGet, "/api/v1/audit?action=occupant.created", admin, nil)
			if status != http.StatusOK {
				return false
			}
			var parsed struct {
				Data []struct {
					Action        string `json:"action"`
					ActorUsername string `json:"actor_username"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &parsed); err != nil {
				return false
			}
			return len(parsed.Data) == 1 && parsed.Data[0].ActorUsername == "admin"
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("unknown route is a uniform not found", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/api/v1/nope", admin, nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "NOT_FOUND", errorCode(t, body))
	})
}
