package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrCheckoutCommandIsNotConstructed is returned when handling a
// CheckoutCommand that bypassed the constructor.
var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a shopper's request to purchase a selection of
// their cart lines, delivered to one destination. Lines not selected stay in
// the cart.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	selection   []cart.Selection
	destination order.Destination

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command for a shopper, a non-empty
// selection of cart lines, and a delivery destination.
func NewCheckoutCommand(
	userID kernel.UUID,
	selection []cart.Selection,
	destination order.Destination,
) (CheckoutCommand, error) {
	checkoutCommand := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		checkoutCommand.setUserID(userID),
		checkoutCommand.setSelection(selection),
		checkoutCommand.setDestination(destination),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return checkoutCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// UserID returns the checking-out shopper's identity.
func (c CheckoutCommand) UserID() kernel.UUID {
	return c.userID
}

// Selection returns the cart lines the shopper chose to purchase.
func (c CheckoutCommand) Selection() []cart.Selection {
	selection := make([]cart.Selection, len(c.selection))
	copy(selection, c.selection)
	return selection
}

// Destination returns the delivery destination for every resulting order.
func (c CheckoutCommand) Destination() order.Destination {
	return c.destination
}

func (c *CheckoutCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CheckoutCommand) setSelection(selection []cart.Selection) error {
	if len(selection) == 0 {
		return errs.NewValueIsRequiredError("selection")
	}
	for _, selected := range selection {
		if err := selected.Validate(); err != nil {
			return err
		}
	}

	c.selection = make([]cart.Selection, len(selection))
	copy(c.selection, selection)
	return nil
}

func (c *CheckoutCommand) setDestination(destination order.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}
