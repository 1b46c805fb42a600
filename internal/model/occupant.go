package model

import "time"

const (
	OccupantStatusActive   = "active"
	OccupantStatusInactive = "inactive"

	// DefaultLeaseID backfills creations that do not name a lease.
	DefaultLeaseID int64 = 1
)

type Occupant struct {
	OccupantID       int64     `json:"occupant_id"`
	LeaseID          int64     `json:"lease_id"`
	PropertyID       int64     `json:"property_id"`
	UnitID           int64     `json:"unit_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Relationship     string    `json:"relationship"`
	RegistrationDate string    `json:"registrationDate"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// OccupantFilter narrows occupant listings. Zero values mean "no filter".
type OccupantFilter struct {
	PropertyID int64
	UnitID     int64
	LeaseID    int64
}
