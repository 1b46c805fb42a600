package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"building-portal/internal/database"
	"building-portal/internal/model"
)

type MaintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const maintenanceColumns = `request_id, property_id, unit_id, tenant_name, email, category,
	 description, priority, status, created_at`

func (r *MaintenanceRepository) List(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceRequest, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.PropertyID > 0 {
		where = append(where, "property_id = ?")
		args = append(args, filter.PropertyID)
	}
	if filter.UnitID > 0 {
		where = append(where, "unit_id = ?")
		args = append(args, filter.UnitID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.MaintenanceRequest, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance request: %w", err)
		}
		requests = append(requests, m)
	}
	return requests, rows.Err()
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, requestID int64) (model.MaintenanceRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE request_id = ?`, requestID)

	m, err := scanMaintenance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MaintenanceRequest{}, model.ErrMaintenanceNotFound
	}
	if err != nil {
		return model.MaintenanceRequest{}, fmt.Errorf("find maintenance request by id: %w", err)
	}
	return m, nil
}

func (r *MaintenanceRepository) CreateTx(ctx context.Context, tx *sql.Tx, m *model.MaintenanceRequest) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO maintenance_requests
		 (property_id, unit_id, tenant_name, email, category, description,
		  priority, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PropertyID, m.UnitID, m.TenantName, m.Email, m.Category, m.Description,
		m.Priority, m.Status, database.FormatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("create maintenance request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("maintenance insert id: %w", err)
	}
	m.RequestID = id
	return nil
}

func (r *MaintenanceRepository) UpdateTx(ctx context.Context, tx *sql.Tx, req model.UpdateMaintenanceRequest) (int64, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if req.TenantName != nil {
		set = append(set, "tenant_name = ?")
		args = append(args, *req.TenantName)
	}
	if req.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *req.Priority)
	}
	if req.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *req.Status)
	}

	if len(set) == 0 {
		return 0, fmt.Errorf("no maintenance fields to update")
	}

	args = append(args, req.RequestID)
	query := "UPDATE maintenance_requests SET " + strings.Join(set, ", ") + " WHERE request_id = ?"

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update maintenance request: %w", err)
	}
	return result.RowsAffected()
}

func (r *MaintenanceRepository) DeleteTx(ctx context.Context, tx *sql.Tx, requestID int64) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM maintenance_requests WHERE request_id = ?`, requestID)
	if err != nil {
		return 0, fmt.Errorf("delete maintenance request: %w", err)
	}
	return result.RowsAffected()
}

func scanMaintenance(row rowScanner) (model.MaintenanceRequest, error) {
	var m model.MaintenanceRequest
	var createdAt string

	err := row.Scan(&m.RequestID, &m.PropertyID, &m.UnitID, &m.TenantName, &m.Email,
		&m.Category, &m.Description, &m.Priority, &m.Status, &createdAt)
	if err != nil {
		return model.MaintenanceRequest{}, err
	}

	m.CreatedAt = database.ParseTime(createdAt)
	return m, nil
}
