package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"building-portal/internal/logger"
	"building-portal/internal/model"
	"building-portal/internal/security"
	"building-portal/pkg/apierror"
)

type userFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type sessionStore interface {
	Create(ctx context.Context, s model.Session) error
	Find(ctx context.Context, sessionID string, token string) (model.Session, error)
	Delete(ctx context.Context, sessionID string, token string) error
	CleanExpired(ctx context.Context, now time.Time) (int64, error)
}

// CredentialResult is the structured outcome of a credential check. The
// caller decides how much of the distinction to surface; nothing here is
// thrown so the handler can build a field-level message.
type CredentialResult struct {
	OK      bool
	Field   string
	Message string
	User    model.User
}

type AuthService struct {
	users    userFinder
	sessions sessionStore
	verifier security.Verifier
	ttl      time.Duration
}

func NewAuthService(users userFinder, sessions sessionStore, verifier security.Verifier, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AuthService{users: users, sessions: sessions, verifier: verifier, ttl: ttl}
}

// AuthenticateCredentials looks the user up by username only, verifies the
// password against the stored hash and requires verified status. Failed
// attempts are security-logged with the username, never the password.
func (s *AuthService) AuthenticateCredentials(ctx context.Context, username string, password string) (CredentialResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		logger.LogSecurity("login_failed", logger.Context{Username: username, Action: "login"},
			map[string]any{"reason": "user_not_found"})
		return CredentialResult{Field: "username", Message: "User not found"}, nil
	}
	if err != nil {
		return CredentialResult{}, fmt.Errorf("authenticate credentials: %w", err)
	}

	if !s.verifier.Verify(user.PasswordHash, password) {
		logger.LogSecurity("login_failed", logger.Context{Username: username, Action: "login"},
			map[string]any{"reason": "wrong_password"})
		return CredentialResult{Field: "password", Message: "Incorrect password"}, nil
	}

	if user.Status != model.UserStatusVerified {
		logger.LogSecurity("login_failed", logger.Context{UserID: user.ID, Username: username, Action: "login"},
			map[string]any{"reason": "not_verified", "status": string(user.Status)})
		return CredentialResult{Field: "username", Message: "Account is not verified"}, nil
	}

	return CredentialResult{OK: true, User: user}, nil
}

// CreateSession issues a fresh two-secret pair and persists the
// denormalized snapshot. Every login creates a new row; a user may hold
// several concurrent valid sessions.
func (s *AuthService) CreateSession(ctx context.Context, user model.User) (model.Session, error) {
	sessionID, err := randomToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	token, err := randomToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	session := model.Session{
		SessionID:   sessionID,
		Token:       token,
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		LegalID:     user.LegalID,
		ProfileType: user.ProfileType,
		RoleID:      user.RoleID,
		RoleName:    user.RoleName,
		Properties:  user.Properties,
		Status:      model.SessionStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.Session{}, err
	}

	return session, nil
}

// ValidateSession requires both secrets to match a stored row that has not
// expired. An unknown pair is treated as potentially forged and
// security-logged; a matched but stale row is only informational.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string, token string) (model.Session, error) {
	if sessionID == "" || token == "" {
		return model.Session{}, apierror.Unauthorized("session credentials are required")
	}

	session, err := s.sessions.Find(ctx, sessionID, token)
	if errors.Is(err, model.ErrSessionNotFound) {
		logger.LogSecurity("session_validation_failed", logger.Context{SessionID: sessionID},
			map[string]any{"reason": "unknown_session"})
		return model.Session{}, apierror.Unauthorized("invalid session")
	}
	if err != nil {
		return model.Session{}, err
	}

	if session.Expired(time.Now().UTC()) {
		slog.Info("session expired", "session_id", sessionID, "user_id", session.UserID,
			"expired_at", session.ExpiresAt)
		return model.Session{}, apierror.Unauthorized("session expired")
	}

	return session, nil
}

// DeleteSession removes the row only when both secrets match; a mismatched
// pair leaves the row untouched and fails.
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string, token string) error {
	if sessionID == "" || token == "" {
		return apierror.Unauthorized("session credentials are required")
	}

	err := s.sessions.Delete(ctx, sessionID, token)
	if errors.Is(err, model.ErrSessionNotFound) {
		logger.LogSecurity("session_delete_failed", logger.Context{SessionID: sessionID},
			map[string]any{"reason": "unknown_session"})
		return apierror.Unauthorized("invalid session")
	}
	return err
}

// PurgeExpired drops stale session rows. Called once at startup; there is
// no background reaper.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.CleanExpired(ctx, time.Now().UTC())
}

// randomToken returns 256 bits of cryptographic randomness as hex.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
