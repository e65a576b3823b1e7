package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/settlement"
)

// SettlementRepository defines the persistence contract for settlement
// aggregates. Regeneration of a window is expressed as DeletePendingByWindow
// followed by Add calls inside one transaction; Paid settlements are payment
// records and no operation here removes them.
type SettlementRepository interface {
	// Add persists a new settlement aggregate.
	Add(ctx context.Context, aggregate *settlement.Settlement) error

	// Update persists changes to an existing settlement, but only while the
	// stored status still equals expected. Returns an error wrapping
	// errs.ErrStateConflict when a concurrent writer got there first.
	Update(ctx context.Context, aggregate *settlement.Settlement, expected settlement.Status) error

	// Get retrieves a settlement aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error)

	// GetByWindow retrieves every settlement generated for exactly this
	// window, any status.
	GetByWindow(ctx context.Context, window settlement.Window) ([]*settlement.Settlement, error)

	// GetByRider retrieves a rider's settlements, newest window first.
	GetByRider(ctx context.Context, riderID kernel.UUID) ([]*settlement.Settlement, error)

	// HasPaidInWindow reports whether any settlement for exactly this window
	// is already paid.
	HasPaidInWindow(ctx context.Context, window settlement.Window) (bool, error)

	// DeletePendingByWindow removes the Pending settlements generated for
	// exactly this window. Paid settlements are left untouched.
	DeletePendingByWindow(ctx context.Context, window settlement.Window) error
}
