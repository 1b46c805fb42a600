package model

import "building-portal/pkg/apierror"

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *apierror.Body `json:"error,omitempty"`
	Meta    *Meta          `json:"meta,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// SessionCreated is the body of a successful POST /sessions. The token is
// returned exactly once, here; subsequent requests present it as a header.
type SessionCreated struct {
	Success   bool     `json:"success"`
	SessionID string   `json:"sessionId"`
	Token     string   `json:"token"`
	User      AuthUser `json:"user"`
}

type SessionEnvelope struct {
	Success bool    `json:"success"`
	Session Session `json:"session"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OccupantList struct {
	Success   bool       `json:"success"`
	Occupants []Occupant `json:"occupants"`
}

type OccupantCreated struct {
	Success    bool  `json:"success"`
	OccupantID int64 `json:"occupant_id"`
}

type MaintenanceList struct {
	Success  bool                 `json:"success"`
	Requests []MaintenanceRequest `json:"requests"`
}

type MaintenanceCreated struct {
	Success   bool  `json:"success"`
	RequestID int64 `json:"request_id"`
}
