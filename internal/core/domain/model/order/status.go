package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
// It implements a state machine with role-guarded transitions:
//
//	Pending ──> Accepted ──> Delivering ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Which actor role may perform each
// transition is defined by allowedTransitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after checkout splits the cart into
	// per-store orders. The owning store has not reacted yet.
	Pending

	// Accepted means the store manager confirmed the order. Orders in this
	// status with no assigned rider form the matching pool.
	Accepted

	// Delivering means the assigned rider picked the order up.
	Delivering

	// Completed means the assigned rider delivered the order. Terminal;
	// completed orders feed settlement generation.
	Completed

	// Cancelled is the terminal state for orders withdrawn before delivery.
	// Cancellation never deletes an order.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Accepted:   "Accepted",
		Delivering: "Delivering",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Accepted:   "Accepted",
		Delivering: "Delivering",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// StatusFromString parses a status name as used on the wire.
// The comparison is exact; unknown names fail validation.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, invalid ones render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

type transition struct {
	from Status
	to   Status
}

// allowedTransitions is the authoritative transition table: every reachable
// (from, to) pair mapped to the actor roles permitted to perform it.
// A pair absent from this table is an invalid transition for every role.
func allowedTransitions() map[transition][]kernel.Role {
	return map[transition][]kernel.Role{
		{Pending, Accepted}:     {kernel.RoleManager},
		{Pending, Cancelled}:    {kernel.RoleManager, kernel.RoleShopper},
		{Accepted, Delivering}:  {kernel.RoleRider},
		{Accepted, Cancelled}:   {kernel.RoleManager},
		{Delivering, Completed}: {kernel.RoleRider},
	}
}

// ValidateTransition checks that moving from s to target is present in the
// transition table and permitted for the given role. Absent pairs (including
// anything out of a terminal state) fail with ErrInvalidTransition; known
// pairs attempted by the wrong role fail with a NotPermittedError.
func (s Status) ValidateTransition(target Status, role kernel.Role) error {
	roles, ok := allowedTransitions()[transition{from: s, to: target}]
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s, target)
	}

	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}

	return errs.NewNotPermittedError(
		fmt.Sprintf("transition %s to %s", s, target), role.String())
}

// ValidateCanHaveRider validates consistency between status and rider
// assignment when restoring from persistence.
//
//   - Pending orders must not have a rider assigned
//   - Delivering and Completed orders must have a rider assigned
//   - Accepted orders may be either (unassigned ones form the matching pool)
//   - Cancelled orders may be either (cancellation keeps history as-is)
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !hasRider && (s == Delivering || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}
