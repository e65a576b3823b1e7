package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrAddCartLineCommandIsNotConstructed is returned when handling an
// AddCartLineCommand that bypassed the constructor.
var ErrAddCartLineCommandIsNotConstructed = errors.New(
	"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
)

// AddCartLineCommand represents a shopper putting a product selection into
// their cart.
type AddCartLineCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	line   cart.Line

	guard guard.ConstructorGuard
}

// NewAddCartLineCommand creates an add-to-cart command.
func NewAddCartLineCommand(userID kernel.UUID, line cart.Line) (AddCartLineCommand, error) {
	addCommand := AddCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addCommand.setUserID(userID),
		addCommand.setLine(line),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return addCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}

// UserID returns the shopper's identity.
func (c AddCartLineCommand) UserID() kernel.UUID {
	return c.userID
}

// Line returns the selection to add.
func (c AddCartLineCommand) Line() cart.Line {
	return c.line
}

func (c *AddCartLineCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *AddCartLineCommand) setLine(line cart.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	c.line = line
	return nil
}
