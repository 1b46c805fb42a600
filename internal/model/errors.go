package model

import "errors"

var (
	// ErrSessionNotFound means no row matched the (session_id, token)
	// pair. Expiry is not a store concern; the auth service checks it on
	// the row the store returns.
	ErrSessionNotFound = errors.New("session not found")

	// User related errors
	ErrUserNotFound = errors.New("user not found")

	// Resource errors
	ErrOccupantNotFound    = errors.New("occupant not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")
)
