// Package queries contains read operations in the CQRS architecture. Query
// handlers read either straight from the database for flat read models, or
// through ports when the answer needs domain logic (like proximity ranking).
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned when handling a
// ListOrdersQuery that bypassed the constructor.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders scoped to what the actor may see:
// shoppers get their own orders, riders the orders assigned to them,
// managers one store's orders, and admins everything, optionally narrowed to
// one store.
type ListOrdersQuery struct {
	actor   kernel.Actor
	storeID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an order listing query. storeID narrows the
// result to one store; managers must provide it, admins may, and other roles
// may not.
func NewListOrdersQuery(actor kernel.Actor, storeID *kernel.UUID) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if actor.Is(kernel.RoleManager) && storeID == nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("storeId")
	}
	if storeID != nil {
		if err := storeID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		if !actor.Is(kernel.RoleManager) && !actor.Is(kernel.RoleAdmin) {
			return ListOrdersQuery{}, errs.NewNotPermittedError(
				"list orders by store", actor.Role().String())
		}
	}

	return ListOrdersQuery{
		actor:   actor,
		storeID: storeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns whose view of the order book is requested.
func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// StoreID returns the optional store filter.
func (q ListOrdersQuery) StoreID() *kernel.UUID {
	return q.storeID
}

// ListOrdersQueryResponse is a flat order row for listings.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	UserID      kernel.UUID
	StoreID     kernel.UUID
	Status      order.Status
	TotalPrice  int64
	RiderID     *kernel.UUID
	CreatedAt   time.Time
	CompletedAt *time.Time
}
