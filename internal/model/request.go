package model

import (
	"building-portal/internal/util"
	"building-portal/pkg/apierror"
)

// LoginRequest is the body of POST /sessions.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() apierror.FieldErrors {
	var fields apierror.FieldErrors

	switch {
	case util.IsBlank(r.Username):
		fields = append(fields, apierror.FieldError{Field: "username", Message: "username is required"})
	case !util.LengthBetween(r.Username, 3, 50):
		fields = append(fields, apierror.FieldError{Field: "username", Message: "username must be between 3 and 50 characters"})
	}

	switch {
	case r.Password == "":
		fields = append(fields, apierror.FieldError{Field: "password", Message: "password is required"})
	case len(r.Password) < 6:
		fields = append(fields, apierror.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return fields
}

type CreateOccupantRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PropertyID       int64  `json:"property_id"`
	UnitID           int64  `json:"unit_id"`
	LeaseID          int64  `json:"lease_id"`
	Relationship     string `json:"relationship"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
}

func (r CreateOccupantRequest) Validate() apierror.FieldErrors {
	var fields apierror.FieldErrors

	if util.IsBlank(r.Name) {
		fields = append(fields, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	switch {
	case util.IsBlank(r.Email):
		fields = append(fields, apierror.FieldError{Field: "email", Message: "email is required"})
	case !util.IsValidEmail(r.Email):
		fields = append(fields, apierror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if r.PropertyID <= 0 {
		fields = append(fields, apierror.FieldError{Field: "property_id", Message: "property_id is required"})
	}
	if r.Status != "" && r.Status != OccupantStatusActive && r.Status != OccupantStatusInactive {
		fields = append(fields, apierror.FieldError{Field: "status", Message: "status must be active or inactive"})
	}

	return fields
}

// UpdateOccupantRequest carries a partial update. Nil pointers mean "leave
// the column untouched"; the set of updatable columns is the explicit
// allow-list in the occupant repository.
type UpdateOccupantRequest struct {
	OccupantID       int64   `json:"occupant_id"`
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	PropertyID       *int64  `json:"property_id"`
	UnitID           *int64  `json:"unit_id"`
	LeaseID          *int64  `json:"lease_id"`
	Relationship     *string `json:"relationship"`
	RegistrationDate *string `json:"registrationDate"`
	Status           *string `json:"status"`
}

func (r UpdateOccupantRequest) HasChanges() bool {
	return r.Name != nil || r.Email != nil || r.Phone != nil ||
		r.PropertyID != nil || r.UnitID != nil || r.LeaseID != nil ||
		r.Relationship != nil || r.RegistrationDate != nil || r.Status != nil
}

func (r UpdateOccupantRequest) Validate() apierror.FieldErrors {
	var fields apierror.FieldErrors

	if r.OccupantID <= 0 {
		fields = append(fields, apierror.FieldError{Field: "occupant_id", Message: "occupant_id is required"})
	}
	if !r.HasChanges() {
		fields = append(fields, apierror.FieldError{Field: "body", Message: "at least one field to update is required"})
	}
	if r.Name != nil && util.IsBlank(*r.Name) {
		fields = append(fields, apierror.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Email != nil && !util.IsValidEmail(*r.Email) {
		fields = append(fields, apierror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if r.Status != nil && *r.Status != OccupantStatusActive && *r.Status != OccupantStatusInactive {
		fields = append(fields, apierror.FieldError{Field: "status", Message: "status must be active or inactive"})
	}

	return fields
}

type CreateMaintenanceRequest struct {
	PropertyID  int64  `json:"property_id"`
	UnitID      int64  `json:"unit_id"`
	TenantName  string `json:"tenant_name"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r CreateMaintenanceRequest) Validate() apierror.FieldErrors {
	var fields apierror.FieldErrors

	if r.PropertyID <= 0 {
		fields = append(fields, apierror.FieldError{Field: "property_id", Message: "property_id is required"})
	}
	if util.IsBlank(r.TenantName) {
		fields = append(fields, apierror.FieldError{Field: "tenant_name", Message: "tenant_name is required"})
	}
	if util.IsBlank(r.Description) {
		fields = append(fields, apierror.FieldError{Field: "description", Message: "description is required"})
	}
	if r.Email != "" && !util.IsValidEmail(r.Email) {
		fields = append(fields, apierror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	switch r.Priority {
	case "", MaintenancePriorityLow, MaintenancePriorityMedium, MaintenancePriorityHigh, MaintenancePriorityUrgent:
	default:
		fields = append(fields, apierror.FieldError{Field: "priority", Message: "priority must be low, medium, high or urgent"})
	}

	return fields
}

type UpdateMaintenanceRequest struct {
	RequestID   int64   `json:"request_id"`
	TenantName  *string `json:"tenant_name"`
	Email       *string `json:"email"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (r UpdateMaintenanceRequest) HasChanges() bool {
	return r.TenantName != nil || r.Email != nil || r.Category != nil ||
		r.Description != nil || r.Priority != nil || r.Status != nil
}

func (r UpdateMaintenanceRequest) Validate() apierror.FieldErrors {
	var fields apierror.FieldErrors

	if r.RequestID <= 0 {
		fields = append(fields, apierror.FieldError{Field: "request_id", Message: "request_id is required"})
	}
	if !r.HasChanges() {
		fields = append(fields, apierror.FieldError{Field: "body", Message: "at least one field to update is required"})
	}
	if r.Email != nil && !util.IsValidEmail(*r.Email) {
		fields = append(fields, apierror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if r.Status != nil {
		switch *r.Status {
		case MaintenanceStatusOpen, MaintenanceStatusInProgress, MaintenanceStatusResolved:
		default:
			fields = append(fields, apierror.FieldError{Field: "status", Message: "status must be open, in_progress or resolved"})
		}
	}

	return fields
}
