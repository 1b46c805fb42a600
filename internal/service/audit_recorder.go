package service

import (
	"context"
	"log/slog"

	"building-portal/internal/event"
	"building-portal/internal/logger"
	"building-portal/internal/model"
)

type auditLog interface {
	Log(ctx context.Context, entry model.AuditEntry) error
}

// AuditRecorder subscribes to the mutation event bus and persists one audit
// trail row per event, alongside the structured audit log line.
type AuditRecorder struct {
	repo auditLog
}

func NewAuditRecorder(repo auditLog) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

// Run blocks consuming events until ctx is cancelled. Persistence failures
// are logged and skipped; the audit trail must never take a request down.
func (a *AuditRecorder) Run(ctx context.Context, bus event.Bus) {
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			a.record(ctx, e)
		}
	}
}

func (a *AuditRecorder) record(ctx context.Context, e event.Event) {
	entry := model.AuditEntry{
		Action:        string(e.Type),
		Resource:      e.Resource,
		ActorUserID:   e.ActorUserID,
		ActorUsername: e.ActorUsername,
		RequestID:     e.RequestID,
		OccurredAt:    e.Timestamp,
	}

	if err := a.repo.Log(ctx, entry); err != nil {
		slog.Error("failed to persist audit entry", "action", entry.Action, "error", err)
		return
	}

	logger.LogAudit(entry.Action, entry.Resource, logger.Context{
		RequestID: e.RequestID,
		UserID:    e.ActorUserID,
		Username:  e.ActorUsername,
	})
}
