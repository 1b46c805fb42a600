package model

import "time"

const SessionStatusActive = "active"

// Session is a server-issued two-secret credential pair plus a denormalized
// snapshot of the user at login time. The snapshot is a point-in-time copy;
// it is not refreshed if the user record changes, a staleness window bounded
// by the session TTL.
type Session struct {
	SessionID   string      `json:"session_id"`
	Token       string      `json:"-"`
	UserID      int64       `json:"user_id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone"`
	LegalID     string      `json:"legal_id,omitempty"`
	ProfileType ProfileType `json:"profile_type"`
	RoleID      int64       `json:"role_id"`
	RoleName    string      `json:"role_name"`
	Properties  []int64     `json:"properties"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at the given
// instant. A session is valid strictly before expires_at.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
