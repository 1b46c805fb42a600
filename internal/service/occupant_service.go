package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"building-portal/internal/database"
	"building-portal/internal/model"
	"building-portal/internal/repository"
	"building-portal/pkg/apierror"
)

type OccupantService struct {
	db        *database.DB
	occupants *repository.OccupantRepository
}

func NewOccupantService(db *database.DB, occupants *repository.OccupantRepository) *OccupantService {
	return &OccupantService{db: db, occupants: occupants}
}

func (s *OccupantService) List(ctx context.Context, filter model.OccupantFilter) ([]model.Occupant, error) {
	return s.occupants.List(ctx, filter)
}

// Create validates the payload, applies defaults and inserts inside a
// transaction. Validation failures enumerate every violated field.
func (s *OccupantService) Create(ctx context.Context, req model.CreateOccupantRequest) (model.Occupant, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.Occupant{}, apierror.Validation("occupant validation failed", fields...)
	}

	now := time.Now().UTC()

	occupant := model.Occupant{
		LeaseID:          req.LeaseID,
		PropertyID:       req.PropertyID,
		UnitID:           req.UnitID,
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Relationship:     strings.TrimSpace(req.Relationship),
		RegistrationDate: req.RegistrationDate,
		Status:           req.Status,
		CreatedAt:        now,
	}
	if occupant.LeaseID <= 0 {
		occupant.LeaseID = model.DefaultLeaseID
	}
	if occupant.Status == "" {
		occupant.Status = model.OccupantStatusActive
	}
	if occupant.RegistrationDate == "" {
		occupant.RegistrationDate = now.Format("2006-01-02")
	}

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.occupants.CreateTx(ctx, tx, &occupant)
	})
	if err != nil {
		return model.Occupant{}, err
	}

	return occupant, nil
}

// Update applies a partial update through the validated-batch helper so the
// validate-then-apply discipline is the same one bulk callers get.
func (s *OccupantService) Update(ctx context.Context, req model.UpdateOccupantRequest) error {
	return database.UpdateWithValidation(ctx, s.db,
		[]model.UpdateOccupantRequest{req},
		func(r model.UpdateOccupantRequest) error {
			if fields := r.Validate(); len(fields) > 0 {
				return apierror.Validation("occupant update validation failed", fields...)
			}
			return nil
		},
		func(ctx context.Context, tx *sql.Tx, r model.UpdateOccupantRequest) error {
			affected, err := s.occupants.UpdateTx(ctx, tx, r)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apierror.NotFound("occupant not found")
			}
			return nil
		})
}

func (s *OccupantService) Delete(ctx context.Context, occupantID int64) error {
	if occupantID <= 0 {
		return apierror.Validation("occupant deletion failed",
			apierror.FieldError{Field: "occupant_id", Message: "occupant_id is required"})
	}

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		affected, err := s.occupants.DeleteTx(ctx, tx, occupantID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apierror.NotFound("occupant not found")
		}
		return nil
	})
}
