package model

import "time"

const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusResolved   = "resolved"

	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)

type MaintenanceRequest struct {
	RequestID   int64     `json:"request_id"`
	PropertyID  int64     `json:"property_id"`
	UnitID      int64     `json:"unit_id"`
	TenantName  string    `json:"tenant_name"`
	Email       string    `json:"email"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type MaintenanceFilter struct {
	PropertyID int64
	UnitID     int64
	Status     string
}
