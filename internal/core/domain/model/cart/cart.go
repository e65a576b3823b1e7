// Package cart contains the shopping Cart aggregate: the unpriced selection a
// shopper builds up before checkout. Lines reference products by id; prices
// and owning stores are resolved against the catalog at checkout time.
package cart

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart instance was not created
// through the NewCart or RestoreCart factory methods.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

// Cart is the aggregate root for one shopper's selection. A shopper has at
// most one cart; it is keyed by the shopper's id.
type Cart struct {
	userID kernel.UUID
	lines  []Line

	isConstructed bool
}

// NewCart creates an empty cart for a shopper.
func NewCart(userID kernel.UUID) (*Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		userID:        userID,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence.
func RestoreCart(userID kernel.UUID, lines []Line) (*Cart, error) {
	cart, err := NewCart(userID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err := cart.AddLine(line); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}

	return nil
}

// UserID returns the owning shopper's identity.
func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddLine adds a line to the cart. A line for the same product and option
// merges into the existing one by summing quantities.
func (c *Cart) AddLine(line Line) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].MatchesSelection(line) {
			merged, err := NewLine(
				c.lines[i].ProductID(), c.lines[i].OptionID(),
				c.lines[i].Quantity()+line.Quantity())
			if err != nil {
				return err
			}
			c.lines[i] = merged
			return nil
		}
	}

	c.lines = append(c.lines, line)
	return nil
}

// SelectLines resolves selections to the cart lines they identify, carrying
// the cart's quantities. Every selection must match a line the cart holds;
// duplicate selections of the same line collapse into one.
func (c *Cart) SelectLines(selections []Selection) ([]Line, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	selected := make([]Line, 0, len(selections))
	for _, selection := range selections {
		if err := selection.Validate(); err != nil {
			return nil, err
		}

		matched := false
		for _, line := range c.lines {
			if !selection.Matches(line) {
				continue
			}
			matched = true

			duplicate := false
			for _, already := range selected {
				if already.MatchesSelection(line) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				selected = append(selected, line)
			}
			break
		}
		if !matched {
			return nil, errs.NewObjectNotFoundError(
				"cart line", selection.ProductID().String())
		}
	}

	return selected, nil
}

// RemoveMatching removes every cart line whose product and option selection
// matches one of the purchased lines. Lines the cart does not hold are
// ignored, which keeps checkout idempotent against a stale cart.
func (c *Cart) RemoveMatching(purchased []Line) error {
	if err := c.Validate(); err != nil {
		return err
	}

	remaining := c.lines[:0]
	for _, line := range c.lines {
		matched := false
		for _, bought := range purchased {
			if line.MatchesSelection(bought) {
				matched = true
				break
			}
		}
		if !matched {
			remaining = append(remaining, line)
		}
	}
	c.lines = remaining

	return nil
}
