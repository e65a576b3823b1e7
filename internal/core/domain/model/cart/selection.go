package cart

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrSelectionIsNotConstructed is returned when using an improperly
// initialized Selection.
var ErrSelectionIsNotConstructed = errs.NewValueIsRequiredError(
	"cart selection must be created via NewSelection constructor")

// Selection identifies one cart line by its product and option, regardless of
// the quantity the cart holds. Checkout consumes selections, not lines: the
// shopper names what to buy and the cart supplies the quantities.
type Selection struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	optionID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelection creates a selection for a product and an optional option.
func NewSelection(productID kernel.UUID, optionID *kernel.UUID) (Selection, error) {
	selection := Selection{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		selection.setProductID(productID),
		selection.setOptionID(optionID),
	); err != nil {
		return Selection{}, err
	}

	return selection, nil
}

// Validate checks that the Selection was created through the constructor.
func (s Selection) Validate() error {
	return s.guard.Validate(ErrSelectionIsNotConstructed)
}

// ProductID returns the selected product's identity.
func (s Selection) ProductID() kernel.UUID {
	return s.productID
}

// OptionID returns the selected product option, or nil when the product has
// no options.
func (s Selection) OptionID() *kernel.UUID {
	return s.optionID
}

// Matches reports whether the selection identifies the given line.
func (s Selection) Matches(line Line) bool {
	if !s.productID.IsEqual(line.productID) {
		return false
	}
	if (s.optionID == nil) != (line.optionID == nil) {
		return false
	}

	return s.optionID == nil || s.optionID.IsEqual(*line.optionID)
}

func (s *Selection) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	s.productID = productID
	return nil
}

func (s *Selection) setOptionID(optionID *kernel.UUID) error {
	if optionID == nil {
		return nil
	}
	if err := optionID.Validate(); err != nil {
		return err
	}
	s.optionID = optionID
	return nil
}
