package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"building-portal/internal/database"
	"building-portal/internal/model"
	"building-portal/internal/repository"
	"building-portal/pkg/apierror"
)

func newOccupantService(t *testing.T) (*OccupantService, *database.DB) {
	t.Helper()
	db := testDB(t)
	return NewOccupantService(db, repository.NewOccupantRepository(db.SQL)), db
}

func TestOccupantCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies defaults and assigns an id", func(t *testing.T) {
		svc, _ := newOccupantService(t)

		occupant, err := svc.Create(ctx, model.CreateOccupantRequest{
			Name:       "  Jane Renter  ",
			Email:      "jane@example.com",
			PropertyID: 1,
		})
		require.NoError(t, err)
		require.Positive(t, occupant.OccupantID)
		require.Equal(t, "Jane Renter", occupant.Name)
		require.Equal(t, model.DefaultLeaseID, occupant.LeaseID)
		require.Equal(t, model.OccupantStatusActive, occupant.Status)
		require.Equal(t, time.Now().UTC().Format("2006-01-02"), occupant.RegistrationDate)
	})

	t.Run("invalid payload writes nothing", func(t *testing.T) {
		svc, db := newOccupantService(t)

		_, err := svc.Create(ctx, model.CreateOccupantRequest{
			Name:       "No Email",
			Email:      "not-an-address",
			PropertyID: 1,
		})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, apierror.CodeValidation, apiErr.Code)

		var n int
		require.NoError(t, db.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM occupants").Scan(&n))
		require.Zero(t, n)
	})
}

func TestOccupantListFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newOccupantService(t)
	for _, o := range []model.CreateOccupantRequest{
		{Name: "A", Email: "a@example.com", PropertyID: 1, UnitID: 101},
		{Name: "B", Email: "b@example.com", PropertyID: 1, UnitID: 102},
		{Name: "C", Email: "c@example.com", PropertyID: 2, UnitID: 201},
	} {
		_, err := svc.Create(ctx, o)
		require.NoError(t, err)
	}

	t.Run("no filter returns everything", func(t *testing.T) {
		occupants, err := svc.List(ctx, model.OccupantFilter{})
		require.NoError(t, err)
		require.Len(t, occupants, 3)
	})

	t.Run("property filter narrows", func(t *testing.T) {
		occupants, err := svc.List(ctx, model.OccupantFilter{PropertyID: 1})
		require.NoError(t, err)
		require.Len(t, occupants, 2)
	})

	t.Run("property and unit filters conjoin", func(t *testing.T) {
		occupants, err := svc.List(ctx, model.OccupantFilter{PropertyID: 1, UnitID: 102})
		require.NoError(t, err)
		require.Len(t, occupants, 1)
		require.Equal(t, "B", occupants[0].Name)
	})
}

func TestOccupantUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("partial update touches only named fields", func(t *testing.T) {
		svc, _ := newOccupantService(t)
		created, err := svc.Create(ctx, model.CreateOccupantRequest{
			Name: "Before", Email: "before@example.com", PropertyID: 1, Phone: "555-0100",
		})
		require.NoError(t, err)

		name := "After"
		require.NoError(t, svc.Update(ctx, model.UpdateOccupantRequest{
			OccupantID: created.OccupantID,
			Name:       &name,
		}))

		occupants, err := svc.List(ctx, model.OccupantFilter{PropertyID: 1})
		require.NoError(t, err)
		require.Len(t, occupants, 1)
		require.Equal(t, "After", occupants[0].Name)
		require.Equal(t, "before@example.com", occupants[0].Email)
		require.Equal(t, "555-0100", occupants[0].Phone)
	})

	t.Run("missing occupant is a not-found error", func(t *testing.T) {
		svc, _ := newOccupantService(t)
		name := "Ghost"
		err := svc.Update(ctx, model.UpdateOccupantRequest{OccupantID: 404, Name: &name})

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, apierror.CodeNotFound, apiErr.Code)
	})

	t.Run("empty update is a validation error", func(t *testing.T) {
		svc, _ := newOccupantService(t)
		err := svc.Update(ctx, model.UpdateOccupantRequest{OccupantID: 1})

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, apierror.CodeValidation, apiErr.Code)
	})
}

func TestOccupantDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		svc, _ := newOccupantService(t)
		created, err := svc.Create(ctx, model.CreateOccupantRequest{
			Name: "Leaving", Email: "leaving@example.com", PropertyID: 1,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.OccupantID))

		occupants, err := svc.List(ctx, model.OccupantFilter{})
		require.NoError(t, err)
		require.Empty(t, occupants)
	})

	t.Run("missing occupant is a not-found error", func(t *testing.T) {
		svc, _ := newOccupantService(t)
		err := svc.Delete(ctx, 404)

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, apierror.CodeNotFound, apiErr.Code)
	})
}

func TestMaintenanceLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := testDB(t)
	svc := NewMaintenanceService(db, repository.NewMaintenanceRepository(db.SQL))

	created, err := svc.Create(ctx, model.CreateMaintenanceRequest{
		PropertyID:  2,
		UnitID:      201,
		TenantName:  "Mark Lease",
		Description: "Kitchen faucet leaks",
	})
	require.NoError(t, err)
	require.Positive(t, created.RequestID)
	require.Equal(t, model.MaintenanceStatusOpen, created.Status)
	require.Equal(t, model.MaintenancePriorityMedium, created.Priority)

	t.Run("status filter", func(t *testing.T) {
		open, err := svc.List(ctx, model.MaintenanceFilter{Status: model.MaintenanceStatusOpen})
		require.NoError(t, err)
		require.Len(t, open, 1)

		resolved, err := svc.List(ctx, model.MaintenanceFilter{Status: model.MaintenanceStatusResolved})
		require.NoError(t, err)
		require.Empty(t, resolved)
	})

	t.Run("status transition", func(t *testing.T) {
		status := model.MaintenanceStatusResolved
		require.NoError(t, svc.Update(ctx, model.UpdateMaintenanceRequest{
			RequestID: created.RequestID,
			Status:    &status,
		}))

		resolved, err := svc.List(ctx, model.MaintenanceFilter{Status: model.MaintenanceStatusResolved})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.RequestID))

		err := svc.Delete(ctx, created.RequestID)
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, apierror.CodeNotFound, apiErr.Code)
	})
}
