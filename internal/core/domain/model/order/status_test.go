package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Accepted, order.Delivering, order.Completed, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Accepted", order.Accepted.String())
	assert.Equal(t, "Delivering", order.Delivering.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses valid names", func(t *testing.T) {
		s, err := order.StatusFromString("Delivering")

		require.NoError(t, err)
		assert.Equal(t, order.Delivering, s)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("delivering")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Accepted.IsTerminal())
	assert.False(t, order.Delivering.IsTerminal())
}

func TestStatus_ValidateTransition(t *testing.T) {
	t.Run("allowed transitions for permitted roles", func(t *testing.T) {
		cases := []struct {
			from order.Status
			to   order.Status
			role kernel.Role
		}{
			{order.Pending, order.Accepted, kernel.RoleManager},
			{order.Pending, order.Cancelled, kernel.RoleManager},
			{order.Pending, order.Cancelled, kernel.RoleShopper},
			{order.Accepted, order.Delivering, kernel.RoleRider},
			{order.Accepted, order.Cancelled, kernel.RoleManager},
			{order.Delivering, order.Completed, kernel.RoleRider},
		}

		for _, tc := range cases {
			require.NoError(t, tc.from.ValidateTransition(tc.to, tc.role),
				"%s -> %s by %s", tc.from, tc.to, tc.role)
		}
	})

	t.Run("transitions absent from the table fail as invalid", func(t *testing.T) {
		cases := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Delivering},
			{order.Pending, order.Completed},
			{order.Accepted, order.Completed},
			{order.Delivering, order.Cancelled},
			{order.Delivering, order.Accepted},
			{order.Completed, order.Cancelled},
			{order.Completed, order.Delivering},
			{order.Cancelled, order.Pending},
			{order.Cancelled, order.Accepted},
		}

		for _, tc := range cases {
			err := tc.from.ValidateTransition(tc.to, kernel.RoleAdmin)
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			require.ErrorIs(t, err, errs.ErrStateConflict)
		}
	})

	t.Run("allowed transitions for the wrong role fail as not permitted", func(t *testing.T) {
		cases := []struct {
			from order.Status
			to   order.Status
			role kernel.Role
		}{
			{order.Pending, order.Accepted, kernel.RoleShopper},
			{order.Pending, order.Accepted, kernel.RoleRider},
			{order.Accepted, order.Delivering, kernel.RoleManager},
			{order.Accepted, order.Cancelled, kernel.RoleShopper},
			{order.Delivering, order.Completed, kernel.RoleManager},
		}

		for _, tc := range cases {
			err := tc.from.ValidateTransition(tc.to, tc.role)
			require.Error(t, err, "%s -> %s by %s", tc.from, tc.to, tc.role)
			require.ErrorIs(t, err, errs.ErrNotPermitted)
		}
	})
}

func TestStatus_ValidateCanHaveRider(t *testing.T) {
	t.Run("pending must not have a rider", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateCanHaveRider(false))
		require.Error(t, order.Pending.ValidateCanHaveRider(true))
	})

	t.Run("delivering and completed must have a rider", func(t *testing.T) {
		require.NoError(t, order.Delivering.ValidateCanHaveRider(true))
		require.NoError(t, order.Completed.ValidateCanHaveRider(true))
		require.Error(t, order.Delivering.ValidateCanHaveRider(false))
		require.Error(t, order.Completed.ValidateCanHaveRider(false))
	})

	t.Run("accepted and cancelled may be either", func(t *testing.T) {
		require.NoError(t, order.Accepted.ValidateCanHaveRider(false))
		require.NoError(t, order.Accepted.ValidateCanHaveRider(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveRider(false))
		require.NoError(t, order.Cancelled.ValidateCanHaveRider(true))
	})
}
