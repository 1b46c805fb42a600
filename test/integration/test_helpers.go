//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"building-portal/internal/config"
	"building-portal/internal/database"
	"building-portal/internal/event"
	"building-portal/internal/handler"
	"building-portal/internal/repository"
	"building-portal/internal/router"
	"building-portal/internal/security"
	"building-portal/internal/service"
)

type portalServer struct {
	*httptest.Server
}

// newPortalServer wires a full server against a throwaway SQLite file with
// the demo seed applied, the same composition the real app performs.
func newPortalServer(t *testing.T) portalServer {
	t.Helper()
	ctx := context.Background()

	db, err := database.New(ctx, filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))

	verifier := security.NewBcryptVerifier()
	require.NoError(t, db.Seed(ctx, verifier))

	userRepo := repository.NewUserRepository(db.SQL)
	sessionRepo := repository.NewSessionRepository(db.SQL)
	occupantRepo := repository.NewOccupantRepository(db.SQL)
	maintenanceRepo := repository.NewMaintenanceRepository(db.SQL)
	auditRepo := repository.NewAuditRepository(db.SQL)

	authService := service.NewAuthService(userRepo, sessionRepo, verifier, 15*time.Minute)
	occupantService := service.NewOccupantService(db, occupantRepo)
	maintenanceService := service.NewMaintenanceService(db, maintenanceRepo)

	bus := event.NewBus()
	recorder := service.NewAuditRecorder(auditRepo)
	recorderCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go recorder.Run(recorderCtx, bus)

	cfg := &config.Config{
		Environment:      "development",
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		SessionTTL:       15 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
	}

	appRouter := router.New(cfg, db, authService, bus,
		handler.NewSessionHandler(authService),
		handler.NewOccupantHandler(occupantService),
		handler.NewMaintenanceHandler(maintenanceService),
		handler.NewAuditHandler(auditRepo),
	)

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return portalServer{server}
}

type sessionPair struct {
	SessionID string
	Token     string
}

func (s portalServer) login(t *testing.T, username, password string) sessionPair {
	t.Helper()

	status, body := s.request(t, http.MethodPost, "/api/v1/sessions", sessionPair{}, map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, "login response: %s", body)

	var parsed struct {
		Success   bool   `json:"success"`
		SessionID string `json:"sessionId"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.SessionID)
	require.NotEmpty(t, parsed.Token)

	return sessionPair{SessionID: parsed.SessionID, Token: parsed.Token}
}

// request performs one API call, attaching the session headers when the
// pair is non-empty, and returns the status with the raw body.
func (s portalServer) request(t *testing.T, method, path string, session sessionPair, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, s.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if session.SessionID != "" {
		req.Header.Set("session-id", session.SessionID)
		req.Header.Set("session-token", session.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var parsed struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed.Error.Code
}
