package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"building-portal/internal/model"
	"building-portal/internal/security"
)

type seedUser struct {
	username    string
	password    string
	email       string
	fullName    string
	phone       string
	legalID     string
	roleID      int64
	roleName    string
	profileType model.ProfileType
	status      model.UserStatus
	properties  string
}

var seedUsers = []seedUser{
	{"admin", "admin123", "admin@building-portal.test", "Alex Morgan", "555-0100", "", 1, "Manager", model.ProfileAdmin, model.UserStatusVerified, "[1,2,3,4]"},
	{"jrenter", "renter123", "jrenter@building-portal.test", "Jordan Reyes", "555-0101", "", 2, "Renter", model.ProfileRenter, model.UserStatusVerified, "[]"},
	{"mlease", "lease123", "mlease@building-portal.test", "Morgan Lee", "555-0102", "", 3, "Leaseholder", model.ProfileLeaseholder, model.UserStatusVerified, "[]"},
	{"oowner", "owner123", "oowner@building-portal.test", "Olivia Chen", "555-0103", "123456789", 4, "Owner", model.ProfileOwner, model.UserStatusVerified, "[2]"},
	{"acmecorp", "corp123", "holdings@acme.test", "Acme Holdings Inc.", "555-0104", "987654321", 5, "Corporate Owner", model.ProfileCorporate, model.UserStatusVerified, "[1,2,3]"},
	{"pnewton", "pending123", "pnewton@building-portal.test", "Pat Newton", "555-0105", "", 2, "Renter", model.ProfileRenter, model.UserStatusPending, "[]"},
}

// Seed inserts one-time demo rows, but only into tables that are still
// empty, so restarting the server never duplicates data.
func (db *DB) Seed(ctx context.Context, verifier security.Verifier) error {
	if err := db.seedUsers(ctx, verifier); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := db.seedOccupants(ctx); err != nil {
		return fmt.Errorf("seed occupants: %w", err)
	}
	if err := db.seedMaintenance(ctx); err != nil {
		return fmt.Errorf("seed maintenance requests: %w", err)
	}
	return nil
}

func (db *DB) tableEmpty(ctx context.Context, table string) (bool, error) {
	if !identPattern.MatchString(table) {
		return false, fmt.Errorf("invalid table name %q", table)
	}

	var count int
	if err := db.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (db *DB) seedUsers(ctx context.Context, verifier security.Verifier) error {
	empty, err := db.tableEmpty(ctx, "users")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	now := FormatTime(time.Now())

	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, u := range seedUsers {
			hash, err := verifier.Hash(u.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO users
				 (username, password_hash, email, full_name, phone, legal_id,
				  role_id, role_name, profile_type, status, properties, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				u.username, hash, u.email, u.fullName, u.phone, nullable(u.legalID),
				u.roleID, u.roleName, string(u.profileType), string(u.status), u.properties, now)
			if err != nil {
				return fmt.Errorf("insert user %s: %w", u.username, err)
			}
		}

		slog.Info("seeded users", "count", len(seedUsers))
		return nil
	})
}

func (db *DB) seedOccupants(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "occupants")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	now := time.Now()
	today := now.UTC().Format("2006-01-02")

	rows := []struct {
		leaseID, propertyID, unitID int64
		name, email, phone, rel     string
	}{
		{1, 1, 101, "Jordan Reyes", "jrenter@building-portal.test", "555-0101", "leaseholder"},
		{1, 1, 101, "Sam Reyes", "sam.reyes@building-portal.test", "555-0110", "spouse"},
		{2, 2, 204, "Morgan Lee", "mlease@building-portal.test", "555-0102", "leaseholder"},
	}

	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, r := range rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO occupants
				 (lease_id, property_id, unit_id, name, email, phone, relationship,
				  registration_date, status, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.leaseID, r.propertyID, r.unitID, r.name, r.email, r.phone, r.rel,
				today, model.OccupantStatusActive, FormatTime(now))
			if err != nil {
				return fmt.Errorf("insert occupant %s: %w", r.name, err)
			}
		}

		slog.Info("seeded occupants", "count", len(rows))
		return nil
	})
}

func (db *DB) seedMaintenance(ctx context.Context) error {
	empty, err := db.tableEmpty(ctx, "maintenance_requests")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	now := FormatTime(time.Now())

	rows := []struct {
		propertyID, unitID             int64
		tenant, email, category, descr string
		priority                       string
	}{
		{1, 101, "Jordan Reyes", "jrenter@building-portal.test", "plumbing", "Kitchen sink drains slowly", model.MaintenancePriorityMedium},
		{2, 204, "Morgan Lee", "mlease@building-portal.test", "electrical", "Hallway light flickering", model.MaintenancePriorityLow},
	}

	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, r := range rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO maintenance_requests
				 (property_id, unit_id, tenant_name, email, category, description,
				  priority, status, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.propertyID, r.unitID, r.tenant, r.email, r.category, r.descr,
				r.priority, model.MaintenanceStatusOpen, now)
			if err != nil {
				return fmt.Errorf("insert maintenance request for %s: %w", r.tenant, err)
			}
		}

		slog.Info("seeded maintenance requests", "count", len(rows))
		return nil
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
