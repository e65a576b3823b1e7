package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/pkg/guard"
)

// ErrRiderSettlementsQueryIsNotConstructed is returned when handling a
// RiderSettlementsQuery that bypassed the constructor.
var ErrRiderSettlementsQueryIsNotConstructed = errors.New(
	"RiderSettlementsQuery must be created via NewRiderSettlementsQuery constructor",
)

// RiderSettlementsQuery retrieves one rider's settlement history.
type RiderSettlementsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRiderSettlementsQuery creates a settlement history query for a rider.
func NewRiderSettlementsQuery(riderID kernel.UUID) (RiderSettlementsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return RiderSettlementsQuery{}, err
	}

	return RiderSettlementsQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RiderSettlementsQuery) Validate() error {
	return q.guard.Validate(ErrRiderSettlementsQueryIsNotConstructed)
}

// RiderID returns whose settlements are requested.
func (q RiderSettlementsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// RiderSettlementsQueryResponse is one settlement row in a rider's history.
type RiderSettlementsQueryResponse struct {
	ID          kernel.UUID
	WindowStart time.Time
	WindowEnd   time.Time
	OrderCount  int
	Commission  int64
	Status      settlement.Status
	CreatedAt   time.Time
}
