package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrAssignOrderCommandIsNotConstructed is returned when handling an
// AssignOrderCommand that bypassed the constructor.
var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a rider claiming an available order for
// themselves. Only riders may claim, and only on their own behalf.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a claim command. The actor must carry the
// rider role; anyone else gets an authorization error.
func NewAssignOrderCommand(orderID kernel.UUID, actor kernel.Actor) (AssignOrderCommand, error) {
	assignCommand := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setActor(actor),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the claimed order's identifier.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the claiming rider.
func (c AssignOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleRider) {
		return errs.NewNotPermittedError("assign order", actor.Role().String())
	}

	c.actor = actor
	return nil
}
