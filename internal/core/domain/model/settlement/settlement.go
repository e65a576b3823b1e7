package settlement

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrSettlementIsNotConstructed is returned when a Settlement instance was
	// not created through the NewSettlement or RestoreSettlement factory
	// methods.
	ErrSettlementIsNotConstructed = errors.New(
		"Settlement must be created via NewSettlement or RestoreSettlement constructor")

	// ErrAlreadyPaid is returned when paying a settlement that is already paid.
	ErrAlreadyPaid = errs.NewStateConflictError("settlement is already paid")

	// ErrNoOrders is returned when creating a settlement without any orders.
	ErrNoOrders = errs.NewValueIsRequiredError("settlement orders")

	// ErrRateIsNegative is returned for a negative per-order commission rate.
	ErrRateIsNegative = errs.NewValueIsInvalidError("rate per order must not be negative")
)

// Settlement is the aggregate root for one rider's commission over one
// window. It holds a weak reference to its orders by id; the commission is a
// snapshot computed at generation time and never recalculated.
//
// Invariants:
//   - order ids are unique within a settlement and kept sorted
//   - commission equals the order count times the rate at generation time
//   - a Paid settlement never changes again
type Settlement struct {
	id         kernel.UUID
	riderID    kernel.UUID
	window     Window
	orderIDs   []kernel.UUID
	commission int64
	status     Status
	createdAt  time.Time

	isConstructed bool
}

// NewSettlement creates a Pending settlement for a rider's completed orders
// in the window, computing the commission as len(orderIDs) * ratePerOrder in
// minor currency units. Duplicate order ids are rejected.
func NewSettlement(
	id kernel.UUID,
	riderID kernel.UUID,
	window Window,
	orderIDs []kernel.UUID,
	ratePerOrder int64,
	createdAt time.Time,
) (*Settlement, error) {
	settlement := &Settlement{
		status:        StatusPending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		settlement.setID(id),
		settlement.setRiderID(riderID),
		settlement.setWindow(window),
		settlement.setOrderIDs(orderIDs),
	); err != nil {
		return nil, err
	}

	if ratePerOrder < 0 {
		return nil, ErrRateIsNegative
	}
	settlement.commission = int64(len(settlement.orderIDs)) * ratePerOrder

	return settlement, nil
}

// RestoreSettlement reconstructs a settlement from persistence without
// recomputing the commission snapshot.
func RestoreSettlement(
	id kernel.UUID,
	riderID kernel.UUID,
	window Window,
	orderIDs []kernel.UUID,
	commission int64,
	status Status,
	createdAt time.Time,
) (*Settlement, error) {
	settlement := &Settlement{
		commission:    commission,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		settlement.setID(id),
		settlement.setRiderID(riderID),
		settlement.setWindow(window),
		settlement.setOrderIDs(orderIDs),
		settlement.setStatus(status),
	); err != nil {
		return nil, err
	}

	return settlement, nil
}

// Validate ensures the Settlement instance was properly constructed.
func (s *Settlement) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettlementIsNotConstructed
	}

	return nil
}

// IsEqual compares two settlements by their unique identifiers.
func (s *Settlement) IsEqual(other *Settlement) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the settlement's unique identifier.
func (s *Settlement) ID() kernel.UUID {
	return s.id
}

// RiderID returns the settled rider's identity.
func (s *Settlement) RiderID() kernel.UUID {
	return s.riderID
}

// Window returns the settled date range.
func (s *Settlement) Window() Window {
	return s.window
}

// OrderIDs returns a copy of the settled order ids, sorted.
func (s *Settlement) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(s.orderIDs))
	copy(ids, s.orderIDs)
	return ids
}

// OrderCount returns the number of settled orders.
func (s *Settlement) OrderCount() int {
	return len(s.orderIDs)
}

// Commission returns the commission snapshot in minor currency units.
func (s *Settlement) Commission() int64 {
	return s.commission
}

// Status returns the payment lifecycle status.
func (s *Settlement) Status() Status {
	return s.status
}

// CreatedAt returns the generation timestamp.
func (s *Settlement) CreatedAt() time.Time {
	return s.createdAt
}

// IsPaid reports whether the commission was paid out.
func (s *Settlement) IsPaid() bool {
	return s.status == StatusPaid
}

// MarkPaid transitions the settlement from Pending to Paid. Paying an
// already-paid settlement fails with ErrAlreadyPaid.
func (s *Settlement) MarkPaid() error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.status == StatusPaid {
		return fmt.Errorf("%w: settlement %s", ErrAlreadyPaid, s.id)
	}

	s.status = StatusPaid
	return nil
}

func (s *Settlement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Settlement) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	s.riderID = riderID
	return nil
}

func (s *Settlement) setWindow(window Window) error {
	if err := window.Validate(); err != nil {
		return err
	}
	s.window = window
	return nil
}

func (s *Settlement) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrNoOrders
	}

	seen := make(map[string]struct{}, len(orderIDs))
	ids := make([]kernel.UUID, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		if err := orderID.Validate(); err != nil {
			return err
		}
		if _, ok := seen[orderID.String()]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"settlement orders", fmt.Errorf("duplicate order id %s", orderID))
		}
		seen[orderID.String()] = struct{}{}
		ids = append(ids, orderID)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	s.orderIDs = ids
	return nil
}

func (s *Settlement) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
