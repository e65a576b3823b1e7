package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrMarkSettlementPaidCommandIsNotConstructed is returned when handling a
// MarkSettlementPaidCommand that bypassed the constructor.
var ErrMarkSettlementPaidCommandIsNotConstructed = errors.New(
	"MarkSettlementPaidCommand must be created via NewMarkSettlementPaidCommand constructor",
)

// MarkSettlementPaidCommand represents an administrator recording that a
// rider's commission was paid out.
type MarkSettlementPaidCommand struct { //nolint:recvcheck //using for validation
	settlementID kernel.UUID
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

// NewMarkSettlementPaidCommand creates a payout command. The actor must
// carry the admin role.
func NewMarkSettlementPaidCommand(
	settlementID kernel.UUID,
	actor kernel.Actor,
) (MarkSettlementPaidCommand, error) {
	paidCommand := MarkSettlementPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paidCommand.setSettlementID(settlementID),
		paidCommand.setActor(actor),
	); err != nil {
		return MarkSettlementPaidCommand{}, err
	}

	return paidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkSettlementPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkSettlementPaidCommandIsNotConstructed)
}

// SettlementID returns the settlement to mark as paid.
func (c MarkSettlementPaidCommand) SettlementID() kernel.UUID {
	return c.settlementID
}

// Actor returns the administrator recording the payout.
func (c MarkSettlementPaidCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *MarkSettlementPaidCommand) setSettlementID(settlementID kernel.UUID) error {
	if err := settlementID.Validate(); err != nil {
		return err
	}

	c.settlementID = settlementID
	return nil
}

func (c *MarkSettlementPaidCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewNotPermittedError("mark settlement paid", actor.Role().String())
	}

	c.actor = actor
	return nil
}
