package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"building-portal/internal/event"
	"building-portal/internal/model"
	"building-portal/internal/repository"
)

func TestAuditRecorderPersistsEvents(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := testDB(t)
	repo := repository.NewAuditRepository(db.SQL)
	bus := event.NewBus()

	recorder := NewAuditRecorder(repo)
	go recorder.Run(ctx, bus)

	bus.Publish(event.Event{
		ID:            "evt-1",
		Type:          event.TypeOccupantCreated,
		Resource:      "occupant",
		RequestID:     "req-1",
		ActorUserID:   1,
		ActorUsername: "admin",
		Timestamp:     time.Now().UTC(),
	})

	require.Eventually(t, func() bool {
		entries, _, err := repo.Query(ctx, model.AuditQuery{})
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	entries, meta, err := repo.Query(ctx, model.AuditQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, meta.Total)
	require.Equal(t, string(event.TypeOccupantCreated), entries[0].Action)
	require.Equal(t, "admin", entries[0].ActorUsername)
	require.Equal(t, "req-1", entries[0].RequestID)
}

func TestAuditQueryFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := testDB(t)
	repo := repository.NewAuditRepository(db.SQL)

	now := time.Now().UTC()
	for _, e := range []model.AuditEntry{
		{Action: "occupant.created", Resource: "occupant", ActorUsername: "admin", OccurredAt: now},
		{Action: "occupant.deleted", Resource: "occupant", ActorUsername: "admin", OccurredAt: now},
		{Action: "maintenance.created", Resource: "maintenance", ActorUsername: "jrenter", OccurredAt: now},
	} {
		require.NoError(t, repo.Log(ctx, e))
	}

	t.Run("action filter", func(t *testing.T) {
		entries, meta, err := repo.Query(ctx, model.AuditQuery{Action: "occupant.created"})
		require.NoError(t, err)
		require.Equal(t, 1, meta.Total)
		require.Len(t, entries, 1)
	})

	t.Run("actor filter", func(t *testing.T) {
		entries, meta, err := repo.Query(ctx, model.AuditQuery{Actor: "admin"})
		require.NoError(t, err)
		require.Equal(t, 2, meta.Total)
		require.Len(t, entries, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		entries, meta, err := repo.Query(ctx, model.AuditQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 3, meta.Total)
		require.Equal(t, 2, meta.TotalPages)
		require.Len(t, entries, 1)
	})
}
