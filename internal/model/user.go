package model

import "time"

type ProfileType string

const (
	ProfileRenter      ProfileType = "renter"
	ProfileLeaseholder ProfileType = "leaseholder"
	ProfileOwner       ProfileType = "owner"
	ProfileCorporate   ProfileType = "corporate"
	ProfileAdmin       ProfileType = "admin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusVerified UserStatus = "verified"
	UserStatusPending  UserStatus = "pending"
)

type User struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Phone        string      `json:"phone"`
	LegalID      string      `json:"legal_id,omitempty"`
	RoleID       int64       `json:"role_id"`
	RoleName     string      `json:"role_name"`
	ProfileType  ProfileType `json:"profile_type"`
	Status       UserStatus  `json:"status"`
	Properties   []int64     `json:"properties"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuthUser is the sanitized view returned to clients. It never carries the
// password hash.
type AuthUser struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone"`
	LegalID     string      `json:"legal_id,omitempty"`
	RoleID      int64       `json:"role_id"`
	RoleName    string      `json:"role_name"`
	ProfileType ProfileType `json:"profile_type"`
	Properties  []int64     `json:"properties"`
}

func (u User) Sanitized() AuthUser {
	return AuthUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		LegalID:     u.LegalID,
		RoleID:      u.RoleID,
		RoleName:    u.RoleName,
		ProfileType: u.ProfileType,
		Properties:  u.Properties,
	}
}
