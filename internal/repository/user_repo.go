package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"building-portal/internal/database"
	"building-portal/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, email, full_name, phone, legal_id,
	 role_id, role_name, profile_type, status, properties, created_at`

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower(?)`,
		strings.TrimSpace(username))

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var legalID sql.NullString
	var properties string
	var createdAt string

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &u.Phone,
		&legalID, &u.RoleID, &u.RoleName, &u.ProfileType, &u.Status, &properties, &createdAt)
	if err != nil {
		return model.User{}, err
	}

	u.LegalID = legalID.String
	u.Properties = decodeProperties(properties)
	u.CreatedAt = database.ParseTime(createdAt)
	return u, nil
}

// decodeProperties tolerates malformed stored JSON by returning an empty
// list rather than failing the whole row.
func decodeProperties(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return []int64{}
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []int64{}
	}
	return ids
}

func encodeProperties(ids []int64) string {
	if len(ids) == 0 {
		return "[]"
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}
