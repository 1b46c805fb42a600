package model

import "time"

type AuditEntry struct {
	ID            int64     `json:"id"`
	Action        string    `json:"action"`
	Resource      string    `json:"resource"`
	ActorUserID   int64     `json:"actor_user_id"`
	ActorUsername string    `json:"actor_username"`
	RequestID     string    `json:"request_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type AuditQuery struct {
	Action string
	Actor  string
	Page   int
	Limit  int
}
