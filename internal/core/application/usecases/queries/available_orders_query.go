package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrAvailableOrdersQueryIsNotConstructed is returned when handling an
// AvailableOrdersQuery that bypassed the constructor.
var ErrAvailableOrdersQueryIsNotConstructed = errors.New(
	"AvailableOrdersQuery must be created via NewAvailableOrdersQuery constructor",
)

// AvailableOrdersQuery retrieves the claimable order pool for a rider,
// ranked by proximity to each order's pickup store.
type AvailableOrdersQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAvailableOrdersQuery creates an available-orders query for a rider.
func NewAvailableOrdersQuery(riderID kernel.UUID) (AvailableOrdersQuery, error) {
	if err := riderID.Validate(); err != nil {
		return AvailableOrdersQuery{}, err
	}

	return AvailableOrdersQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrAvailableOrdersQueryIsNotConstructed)
}

// RiderID returns the asking rider's identifier.
func (q AvailableOrdersQuery) RiderID() kernel.UUID {
	return q.riderID
}

// AvailableOrdersQueryResponse is one claimable order in the ranked pool.
// DistanceKm is nil when the rider or the store has no known location; such
// rows sort after the measurable ones.
type AvailableOrdersQueryResponse struct {
	ID         kernel.UUID
	StoreID    kernel.UUID
	TotalPrice int64
	CreatedAt  time.Time
	DistanceKm *float64
}
