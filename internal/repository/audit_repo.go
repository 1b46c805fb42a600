package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"building-portal/internal/database"
	"building-portal/internal/model"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_entries
		 (action, resource, actor_user_id, actor_username, request_id, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Action, entry.Resource, entry.ActorUserID, entry.ActorUsername,
		entry.RequestID, database.FormatTime(entry.OccurredAt))
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if action := strings.TrimSpace(query.Action); action != "" {
		where = append(where, "lower(action) = lower(?)")
		args = append(args, action)
	}
	if actor := strings.TrimSpace(query.Actor); actor != "" {
		where = append(where, "lower(actor_username) = lower(?)")
		args = append(args, actor)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM audit_entries " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + query.Limit - 1) / query.Limit
	}
	meta := model.Meta{Page: query.Page, Limit: query.Limit, Total: total, TotalPages: totalPages}

	offset := (query.Page - 1) * query.Limit
	dataQuery := `SELECT id, action, resource, actor_user_id, actor_username, request_id, occurred_at
		 FROM audit_entries ` + whereClause + `
		 ORDER BY occurred_at DESC
		 LIMIT ? OFFSET ?`
	args = append(args, query.Limit, offset)

	rows, err := r.db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.Action, &e.Resource, &e.ActorUserID,
			&e.ActorUsername, &e.RequestID, &occurredAt); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}
		e.OccurredAt = database.ParseTime(occurredAt)
		entries = append(entries, e)
	}
	return entries, meta, rows.Err()
}
