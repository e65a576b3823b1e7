package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
var ErrLineIsNotConstructed = errs.NewValueIsRequiredError(
	"cart line must be created via NewLine constructor")

// Line is one product selection in a cart: a product, an optional product
// option, and a quantity. Lines carry no price; pricing happens at checkout.
type Line struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	optionID  *kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewLine creates a cart line. Quantity must be positive.
func NewLine(productID kernel.UUID, optionID *kernel.UUID, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setOptionID(optionID),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate checks that the Line was created through the constructor.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the selected product's identity.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// OptionID returns the selected product option, or nil when the product has
// no options.
func (l Line) OptionID() *kernel.UUID {
	return l.optionID
}

// Quantity returns the selected quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// MatchesSelection reports whether two lines select the same product and
// option, regardless of quantity.
func (l Line) MatchesSelection(other Line) bool {
	if !l.productID.IsEqual(other.productID) {
		return false
	}
	if (l.optionID == nil) != (other.optionID == nil) {
		return false
	}

	return l.optionID == nil || l.optionID.IsEqual(*other.optionID)
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setOptionID(optionID *kernel.UUID) error {
	if optionID == nil {
		return nil
	}
	if err := optionID.Validate(); err != nil {
		return err
	}
	l.optionID = optionID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	l.quantity = quantity
	return nil
}
