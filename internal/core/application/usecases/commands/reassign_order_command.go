package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrReassignOrderCommandIsNotConstructed is returned when handling a
// ReassignOrderCommand that bypassed the constructor.
var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand represents a manager forcing an order onto a specific
// rider, overriding any existing assignment. Reassigning the rider who
// already holds the order succeeds without effect.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a reassignment command. The actor must
// carry the manager role.
func NewReassignOrderCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	actor kernel.Actor,
) (ReassignOrderCommand, error) {
	reassignCommand := ReassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reassignCommand.setOrderID(orderID),
		reassignCommand.setRiderID(riderID),
		reassignCommand.setActor(actor),
	); err != nil {
		return ReassignOrderCommand{}, err
	}

	return reassignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the reassigned order's identifier.
func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider who should hold the order afterwards.
func (c ReassignOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Actor returns the manager who requested the reassignment.
func (c ReassignOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ReassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReassignOrderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *ReassignOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleManager) {
		return errs.NewNotPermittedError("reassign order", actor.Role().String())
	}

	c.actor = actor
	return nil
}
