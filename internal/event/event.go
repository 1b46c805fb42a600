package event

import "time"

type Type string

const (
	TypeSessionCreated     Type = "session.created"
	TypeSessionDeleted     Type = "session.deleted"
	TypeOccupantCreated    Type = "occupant.created"
	TypeOccupantUpdated    Type = "occupant.updated"
	TypeOccupantDeleted    Type = "occupant.deleted"
	TypeMaintenanceCreated Type = "maintenance.created"
	TypeMaintenanceUpdated Type = "maintenance.updated"
	TypeMaintenanceDeleted Type = "maintenance.deleted"
)

// Event describes one successful state mutation. The audit recorder
// subscribes to these and persists an audit trail row per event.
type Event struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Resource      string    `json:"resource"`
	RequestID     string    `json:"request_id,omitempty"`
	ActorUserID   int64     `json:"actor_user_id,omitempty"`
	ActorUsername string    `json:"actor_username,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
