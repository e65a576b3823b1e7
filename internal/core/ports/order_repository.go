package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/settlement"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Status changes go through compare-and-swap style updates: the caller names
// the status it loaded, and the repository applies the change only if the
// stored row still carries it. A lost race surfaces as errs.ErrStateConflict
// instead of silently overwriting a concurrent transition.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, but only while the stored
	// status still equals expected. Returns an error wrapping
	// errs.ErrStateConflict when a concurrent writer got there first, and
	// errs.ErrObjectNotFound when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Assign persists an exclusive rider claim. The write applies only while
	// the stored row is still unassigned and claimable, so of any number of
	// concurrent claimants exactly one succeeds; the rest get an error
	// wrapping order.ErrAlreadyAssigned.
	Assign(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAvailable retrieves the matching pool: orders accepted by their
	// store and not yet claimed by any rider.
	GetAvailable(ctx context.Context) ([]*order.Order, error)

	// GetCompletedInWindow retrieves orders completed within the window,
	// bounds inclusive at day granularity.
	GetCompletedInWindow(ctx context.Context, window settlement.Window) ([]*order.Order, error)
}
