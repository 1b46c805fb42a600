package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"building-portal/internal/database"
	"building-portal/internal/model"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions
		 (session_id, token, user_id, username, email, full_name, phone, legal_id,
		  profile_type, role_id, role_name, properties, status, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Token, s.UserID, s.Username, s.Email, s.FullName, s.Phone,
		nullableString(s.LegalID), string(s.ProfileType), s.RoleID, s.RoleName,
		encodeProperties(s.Properties), s.Status,
		database.FormatTime(s.CreatedAt), database.FormatTime(s.ExpiresAt))
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Find requires the conjunction of both secrets; a lookup by session id
// alone never succeeds. Expiry is not checked here so the caller can tell
// a stale session apart from an unknown one.
func (r *SessionRepository) Find(ctx context.Context, sessionID string, token string) (model.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT session_id, token, user_id, username, email, full_name, phone, legal_id,
		        profile_type, role_id, role_name, properties, status, created_at, expires_at
		 FROM sessions WHERE session_id = ? AND token = ?`,
		sessionID, token)

	var s model.Session
	var legalID sql.NullString
	var properties, createdAt, expiresAt string

	err := row.Scan(&s.SessionID, &s.Token, &s.UserID, &s.Username, &s.Email, &s.FullName,
		&s.Phone, &legalID, &s.ProfileType, &s.RoleID, &s.RoleName, &properties,
		&s.Status, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("find session: %w", err)
	}

	s.LegalID = legalID.String
	s.Properties = decodeProperties(properties)
	s.CreatedAt = database.ParseTime(createdAt)
	s.ExpiresAt = database.ParseTime(expiresAt)
	return s, nil
}

// Delete removes the session only when both secrets match, so logout cannot
// be used as an existence oracle with the session id alone.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string, token string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ? AND token = ?`, sessionID, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrSessionNotFound
	}
	return nil
}

// CleanExpired purges rows whose expiry has passed. There is no background
// reaper; this runs once at startup.
func (r *SessionRepository) CleanExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, database.FormatTime(now))
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	return result.RowsAffected()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
