package handler

import (
	"net/http"
	"strings"

	"building-portal/internal/middleware"
	"building-portal/internal/model"
	"building-portal/internal/service"
	"building-portal/pkg/apierror"
)

type SessionHandler struct {
	auth *service.AuthService
}

func NewSessionHandler(auth *service.AuthService) *SessionHandler {
	return &SessionHandler{auth: auth}
}

// Create handles login: credential check, then a fresh session pair. The
// token appears in this response only.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	payload, err := decodeValid[model.LoginRequest](r)
	if err != nil {
		return err
	}

	result, err := h.auth.AuthenticateCredentials(r.Context(), payload.Username, payload.Password)
	if err != nil {
		return err
	}
	if !result.OK {
		return apierror.Unauthorized(result.Message)
	}

	session, err := h.auth.CreateSession(r.Context(), result.User)
	if err != nil {
		return err
	}

	middleware.RequestLogFrom(r.Context()).SetActor(result.User.ID, result.User.Username, session.SessionID)

	writeJSON(w, http.StatusCreated, model.SessionCreated{
		Success:   true,
		SessionID: session.SessionID,
		Token:     session.Token,
		User:      result.User.Sanitized(),
	})
	return nil
}

// Current returns the denormalized snapshot attached by the session layer.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) error {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return apierror.Unauthorized("authentication required")
	}

	writeJSON(w, http.StatusOK, model.SessionEnvelope{Success: true, Session: session})
	return nil
}

// Delete logs out. It reads the header pair directly rather than going
// through session enforcement, so an expired-but-present session can still
// be removed; an unknown pair fails without touching anything.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	sessionID := strings.TrimSpace(r.Header.Get(middleware.SessionIDHeader))
	token := strings.TrimSpace(r.Header.Get(middleware.SessionTokenHeader))

	if err := h.auth.DeleteSession(r.Context(), sessionID, token); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.Message{Success: true, Message: "Logged out successfully"})
	return nil
}
