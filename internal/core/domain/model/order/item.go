package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem constructor")

// Item is one ordered line: a product (optionally a specific option of it),
// a quantity, and the unit price captured at order time. The unit price is a
// snapshot — later catalog price changes never alter it.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	optionID  *kernel.UUID
	quantity  int
	unitPrice int64

	guard guard.ConstructorGuard
}

// NewItem creates an Item with a positive quantity and a non-negative unit
// price in minor currency units.
func NewItem(productID kernel.UUID, optionID *kernel.UUID, quantity int, unitPrice int64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setOptionID(optionID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the ordered product's identity.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// OptionID returns the chosen product option, or nil when the product has none.
func (i Item) OptionID() *kernel.UUID {
	return i.optionID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() int64 {
	return i.unitPrice * int64(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	i.productID = productID
	return nil
}

func (i *Item) setOptionID(optionID *kernel.UUID) error {
	if optionID != nil {
		if err := optionID.Validate(); err != nil {
			return err
		}
	}

	i.optionID = optionID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%d is negative", unitPrice))
	}

	i.unitPrice = unitPrice
	return nil
}
