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

type OccupantRepository struct {
	db *sql.DB
}

func NewOccupantRepository(db *sql.DB) *OccupantRepository {
	return &OccupantRepository{db: db}
}

const occupantColumns = `occupant_id, lease_id, property_id, unit_id, name, email, phone,
	 relationship, registration_date, status, created_at`

// List returns occupants newest-created-first. Zero-valued filter fields
// are ignored; an empty filter returns every row.
func (r *OccupantRepository) List(ctx context.Context, filter model.OccupantFilter) ([]model.Occupant, error) {
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
	if filter.LeaseID > 0 {
		where = append(where, "lease_id = ?")
		args = append(args, filter.LeaseID)
	}

	query := `SELECT ` + occupantColumns + ` FROM occupants`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}
	defer rows.Close()

	occupants := make([]model.Occupant, 0)
	for rows.Next() {
		o, err := scanOccupant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occupant: %w", err)
		}
		occupants = append(occupants, o)
	}
	return occupants, rows.Err()
}

func (r *OccupantRepository) FindByID(ctx context.Context, occupantID int64) (model.Occupant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+occupantColumns+` FROM occupants WHERE occupant_id = ?`, occupantID)

	o, err := scanOccupant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Occupant{}, model.ErrOccupantNotFound
	}
	if err != nil {
		return model.Occupant{}, fmt.Errorf("find occupant by id: %w", err)
	}
	return o, nil
}

func (r *OccupantRepository) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Occupant) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO occupants
		 (lease_id, property_id, unit_id, name, email, phone, relationship,
		  registration_date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.LeaseID, o.PropertyID, o.UnitID, o.Name, o.Email, o.Phone, o.Relationship,
		o.RegistrationDate, o.Status, database.FormatTime(o.CreatedAt))
	if err != nil {
		return fmt.Errorf("create occupant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("occupant insert id: %w", err)
	}
	o.OccupantID = id
	return nil
}

// UpdateTx applies the partial update over an explicit allow-list of
// columns; request keys never become SQL identifiers. Returns the number of
// rows matched.
func (r *OccupantRepository) UpdateTx(ctx context.Context, tx *sql.Tx, req model.UpdateOccupantRequest) (int64, error) {
	set := make([]string, 0, 9)
	args := make([]any, 0, 10)

	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Phone != nil {
		set = append(set, "phone = ?")
		args = append(args, *req.Phone)
	}
	if req.PropertyID != nil {
		set = append(set, "property_id = ?")
		args = append(args, *req.PropertyID)
	}
	if req.UnitID != nil {
		set = append(set, "unit_id = ?")
		args = append(args, *req.UnitID)
	}
	if req.LeaseID != nil {
		set = append(set, "lease_id = ?")
		args = append(args, *req.LeaseID)
	}
	if req.Relationship != nil {
		set = append(set, "relationship = ?")
		args = append(args, *req.Relationship)
	}
	if req.RegistrationDate != nil {
		set = append(set, "registration_date = ?")
		args = append(args, *req.RegistrationDate)
	}
	if req.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *req.Status)
	}

	if len(set) == 0 {
		return 0, fmt.Errorf("no occupant fields to update")
	}

	args = append(args, req.OccupantID)
	query := "UPDATE occupants SET " + strings.Join(set, ", ") + " WHERE occupant_id = ?"

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update occupant: %w", err)
	}
	return result.RowsAffected()
}

func (r *OccupantRepository) DeleteTx(ctx context.Context, tx *sql.Tx, occupantID int64) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM occupants WHERE occupant_id = ?`, occupantID)
	if err != nil {
		return 0, fmt.Errorf("delete occupant: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOccupant(row rowScanner) (model.Occupant, error) {
	var o model.Occupant
	var createdAt string

	err := row.Scan(&o.OccupantID, &o.LeaseID, &o.PropertyID, &o.UnitID, &o.Name,
		&o.Email, &o.Phone, &o.Relationship, &o.RegistrationDate, &o.Status, &createdAt)
	if err != nil {
		return model.Occupant{}, err
	}

	o.CreatedAt = database.ParseTime(createdAt)
	return o, nil
}
