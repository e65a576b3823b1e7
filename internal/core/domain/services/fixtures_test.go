package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testDestination(t *testing.T) order.Destination {
	t.Helper()
	dest, err := order.NewDestination(
		"12 Teheran-ro, Gangnam-gu", "Lee Min", "010-1234-5678", "Tuesday", "18:00-20:00")
	require.NoError(t, err)
	return dest
}

func testItem(t *testing.T, unitPrice int64) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), nil, 1, unitPrice)
	require.NoError(t, err)
	return item
}

func newAvailableOrder(t *testing.T, storeID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	pending, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), storeID,
		[]order.Item{testItem(t, 1000)}, testDestination(t), createdAt)
	require.NoError(t, err)

	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager)
	require.NoError(t, err)
	require.NoError(t, pending.TransitionTo(order.Accepted, manager, createdAt))

	return pending
}

func newCompletedOrder(t *testing.T, riderID kernel.UUID, completedAt time.Time) *order.Order {
	t.Helper()
	created := completedAt.Add(-2 * time.Hour)
	accepted := newAvailableOrder(t, kernel.NewUUID(), created)
	require.NoError(t, accepted.Assign(riderID))

	riderActor, err := kernel.NewActor(riderID, kernel.RoleRider)
	require.NoError(t, err)
	require.NoError(t, accepted.TransitionTo(order.Delivering, riderActor, created))
	require.NoError(t, accepted.TransitionTo(order.Completed, riderActor, completedAt))

	return accepted
}
