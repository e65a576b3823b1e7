package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrInvalidTransition is returned for a status transition not present in
	// the transition table, including anything out of a terminal state.
	ErrInvalidTransition = errs.NewStateConflictError("order status transition is not allowed")

	// ErrNotAssignedRider is returned when the acting rider is not the rider
	// assigned to the order.
	ErrNotAssignedRider = errs.NewStateConflictError("acting rider is not the assigned rider")

	// ErrAlreadyAssigned is returned when claiming an order another rider
	// already holds.
	ErrAlreadyAssigned = errs.NewStateConflictError("order is already assigned to a rider")

	// ErrNoItems is returned when creating an order without line items.
	ErrNoItems = errs.NewValueIsRequiredError("order items")
)

// Order is the aggregate root for one store's portion of a checkout. It owns
// the delivery status lifecycle, the assigned rider reference, and the price
// snapshot taken at creation.
//
// Invariants:
//   - totalPrice equals the sum of item subtotals at creation time and is
//     never recomputed afterwards
//   - status transitions follow the table in status.go, guarded by actor role
//   - transitions into Delivering/Completed require the acting rider to be
//     the assigned rider
//   - completedAt is stamped exactly once, on the transition into Completed
//   - orders are never deleted; cancellation is a terminal status
type Order struct {
	id          kernel.UUID
	userID      kernel.UUID
	storeID     kernel.UUID
	items       []Item
	totalPrice  int64
	status      Status
	riderID     *kernel.UUID
	destination Destination
	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewOrder creates a Pending order for one store's group of priced line
// items, computing the total price snapshot from the items.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	storeID kernel.UUID,
	items []Item,
	destination Destination,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setStoreID(storeID),
		order.setItems(items),
		order.setDestination(destination),
	); err != nil {
		return nil, err
	}

	for _, item := range order.items {
		order.totalPrice += item.Subtotal()
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence without recomputing the
// price snapshot. Status/rider consistency is re-checked so corrupted rows
// cannot re-enter the domain.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	storeID kernel.UUID,
	items []Item,
	totalPrice int64,
	status Status,
	riderID *kernel.UUID,
	destination Destination,
	createdAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	order := &Order{
		totalPrice:    totalPrice,
		createdAt:     createdAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setStoreID(storeID),
		order.setItems(items),
		order.setDestination(destination),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := status.ValidateCanHaveRider(riderID != nil); err != nil {
		return nil, err
	}
	order.riderID = riderID

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the ordering shopper's identity.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// StoreID returns the owning store's identity.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalPrice returns the immutable price snapshot in minor currency units.
func (o *Order) TotalPrice() int64 {
	return o.totalPrice
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Rider returns the assigned rider's ID, or nil if unassigned.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// Destination returns the delivery destination and requested window.
func (o *Order) Destination() Destination {
	return o.destination
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the completion timestamp, or nil until the order
// transitions into Completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// IsAvailable reports whether the order belongs to the matching pool:
// accepted by its store and not yet claimed by any rider.
func (o *Order) IsAvailable() bool {
	return o.status == Accepted && o.riderID == nil
}

// TransitionTo applies a role-guarded status transition on behalf of actor.
//
// The transition must be present in the status table for the actor's role.
// Transitions into Delivering or Completed additionally require the actor to
// be the assigned rider; a mismatch fails with ErrNotAssignedRider. On the
// transition into Completed the completion timestamp is stamped with now,
// exactly once. Any failure leaves the order unmodified.
func (o *Order) TransitionTo(target Status, actor kernel.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if err := o.status.ValidateTransition(target, actor.Role()); err != nil {
		return err
	}

	if target == Delivering || target == Completed {
		if o.riderID == nil || !actor.ID().IsEqual(*o.riderID) {
			return fmt.Errorf("%w: order %s", ErrNotAssignedRider, o.id)
		}
	}

	o.status = target
	if target == Completed && o.completedAt == nil {
		stamp := now
		o.completedAt = &stamp
	}

	return nil
}

// Assign claims the order for a rider. Allowed while the order is Pending or
// Accepted and unassigned; the order ends up Accepted with the rider set.
// Claiming an order another rider holds fails with ErrAlreadyAssigned.
//
// This is the domain-level rule; the repository enforces the same condition
// atomically so concurrent claimants get exactly one winner.
func (o *Order) Assign(riderID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return err
	}

	if o.status != Pending && o.status != Accepted {
		return fmt.Errorf("%w: %s is not a claimable status", ErrInvalidTransition, o.status)
	}
	if o.riderID != nil {
		return fmt.Errorf("%w: order %s", ErrAlreadyAssigned, o.id)
	}

	o.status = Accepted
	o.riderID = &riderID
	return nil
}

// Reassign overwrites the assigned rider on a manager's behalf. Allowed while
// the order is Accepted or Delivering, including onto an unassigned Accepted
// order. Reassigning the already-assigned rider is a no-op success.
func (o *Order) Reassign(riderID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return err
	}

	if o.status != Accepted && o.status != Delivering {
		return fmt.Errorf("%w: %s is not a reassignable status", ErrInvalidTransition, o.status)
	}

	if o.riderID != nil && o.riderID.IsEqual(riderID) {
		return nil
	}

	o.riderID = &riderID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDestination(destination Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
