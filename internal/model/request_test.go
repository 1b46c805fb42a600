package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials pass", func(t *testing.T) {
		require.Empty(t, LoginRequest{Username: "admin", Password: "admin123"}.Validate())
	})

	t.Run("every violation is reported at once", func(t *testing.T) {
		fields := LoginRequest{}.Validate()
		require.Len(t, fields, 2)
		require.Equal(t, "username", fields[0].Field)
		require.Equal(t, "password", fields[1].Field)
	})

	t.Run("short username rejected", func(t *testing.T) {
		fields := LoginRequest{Username: "ab", Password: "secret1"}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "username", fields[0].Field)
	})

	t.Run("short password rejected", func(t *testing.T) {
		fields := LoginRequest{Username: "admin", Password: "12345"}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "password", fields[0].Field)
	})
}

func TestCreateOccupantRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateOccupantRequest{
		Name:       "Jane Renter",
		Email:      "jane@example.com",
		PropertyID: 1,
	}

	t.Run("minimal valid payload", func(t *testing.T) {
		require.Empty(t, valid.Validate())
	})

	t.Run("missing everything lists each field", func(t *testing.T) {
		fields := CreateOccupantRequest{}.Validate()
		require.Len(t, fields, 3)
	})

	t.Run("bad email", func(t *testing.T) {
		bad := valid
		bad.Email = "not-an-address"
		fields := bad.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "email", fields[0].Field)
	})

	t.Run("unknown status", func(t *testing.T) {
		bad := valid
		bad.Status = "evicted"
		fields := bad.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "status", fields[0].Field)
	})
}

func TestUpdateOccupantRequestValidate(t *testing.T) {
	t.Parallel()

	name := "Renamed Occupant"
	blank := "   "
	badStatus := "frozen"

	t.Run("one changed field is enough", func(t *testing.T) {
		require.Empty(t, UpdateOccupantRequest{OccupantID: 3, Name: &name}.Validate())
	})

	t.Run("no changes rejected", func(t *testing.T) {
		fields := UpdateOccupantRequest{OccupantID: 3}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "body", fields[0].Field)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		fields := UpdateOccupantRequest{Name: &name}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "occupant_id", fields[0].Field)
	})

	t.Run("present but blank name rejected", func(t *testing.T) {
		fields := UpdateOccupantRequest{OccupantID: 3, Name: &blank}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "name", fields[0].Field)
	})

	t.Run("present but invalid status rejected", func(t *testing.T) {
		fields := UpdateOccupantRequest{OccupantID: 3, Status: &badStatus}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "status", fields[0].Field)
	})
}

func TestCreateMaintenanceRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateMaintenanceRequest{
		PropertyID:  2,
		TenantName:  "Mark Lease",
		Description: "Kitchen faucet leaks",
	}

	t.Run("minimal valid payload", func(t *testing.T) {
		require.Empty(t, valid.Validate())
	})

	t.Run("email is optional but checked when present", func(t *testing.T) {
		bad := valid
		bad.Email = "nope"
		fields := bad.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "email", fields[0].Field)
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		bad := valid
		bad.Priority = "catastrophic"
		fields := bad.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "priority", fields[0].Field)
	})
}

func TestUpdateMaintenanceRequestValidate(t *testing.T) {
	t.Parallel()

	status := MaintenanceStatusResolved
	badStatus := "closed"

	t.Run("status transition passes", func(t *testing.T) {
		require.Empty(t, UpdateMaintenanceRequest{RequestID: 9, Status: &status}.Validate())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		fields := UpdateMaintenanceRequest{RequestID: 9, Status: &badStatus}.Validate()
		require.Len(t, fields, 1)
		require.Equal(t, "status", fields[0].Field)
	})

	t.Run("empty update rejected with both violations", func(t *testing.T) {
		fields := UpdateMaintenanceRequest{}.Validate()
		require.Len(t, fields, 2)
	})
}
