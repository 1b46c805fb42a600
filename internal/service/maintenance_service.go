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

type MaintenanceService struct {
	db       *database.DB
	requests *repository.MaintenanceRepository
}

func NewMaintenanceService(db *database.DB, requests *repository.MaintenanceRepository) *MaintenanceService {
	return &MaintenanceService{db: db, requests: requests}
}

func (s *MaintenanceService) List(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceRequest, error) {
	return s.requests.List(ctx, filter)
}

func (s *MaintenanceService) Create(ctx context.Context, req model.CreateMaintenanceRequest) (model.MaintenanceRequest, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.MaintenanceRequest{}, apierror.Validation("maintenance request validation failed", fields...)
	}

	request := model.MaintenanceRequest{
		PropertyID:  req.PropertyID,
		UnitID:      req.UnitID,
		TenantName:  strings.TrimSpace(req.TenantName),
		Email:       strings.TrimSpace(req.Email),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
		Status:      model.MaintenanceStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if request.Priority == "" {
		request.Priority = model.MaintenancePriorityMedium
	}

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.requests.CreateTx(ctx, tx, &request)
	})
	if err != nil {
		return model.MaintenanceRequest{}, err
	}

	return request, nil
}

func (s *MaintenanceService) Update(ctx context.Context, req model.UpdateMaintenanceRequest) error {
	return database.UpdateWithValidation(ctx, s.db,
		[]model.UpdateMaintenanceRequest{req},
		func(r model.UpdateMaintenanceRequest) error {
			if fields := r.Validate(); len(fields) > 0 {
				return apierror.Validation("maintenance update validation failed", fields...)
			}
			return nil
		},
		func(ctx context.Context, tx *sql.Tx, r model.UpdateMaintenanceRequest) error {
			affected, err := s.requests.UpdateTx(ctx, tx, r)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apierror.NotFound("maintenance request not found")
			}
			return nil
		})
}

func (s *MaintenanceService) Delete(ctx context.Context, requestID int64) error {
	if requestID <= 0 {
		return apierror.Validation("maintenance deletion failed",
			apierror.FieldError{Field: "request_id", Message: "request_id is required"})
	}

	total, err := s.db.DeleteWithCascade(ctx, []database.DeleteSpec{
		{Table: "maintenance_requests", Conditions: map[string]any{"request_id": requestID}},
	})
	if err != nil {
		return err
	}
	if total == 0 {
		return apierror.NotFound("maintenance request not found")
	}
	return nil
}
