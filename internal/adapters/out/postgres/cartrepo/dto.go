// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. A cart is stored as its line rows only; saving replaces
// the shopper's rows wholesale, so an empty save clears the cart.
package cartrepo

import (
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// LineDTO represents one cart line row for a shopper.
type LineDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index"`
	ProductID uuid.UUID  `gorm:"type:uuid"`
	OptionID  *uuid.UUID `gorm:"type:uuid"`
	Quantity  int
}

// TableName specifies the database table name for cart lines.
func (LineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart aggregate to its line rows.
func fromDomain(aggregate *cart.Cart) []LineDTO {
	lines := aggregate.Lines()
	dtos := make([]LineDTO, 0, len(lines))
	for _, line := range lines {
		var optionID *uuid.UUID
		if id := line.OptionID(); id != nil {
			raw := id.Bytes()
			optionID = &raw
		}

		dtos = append(dtos, LineDTO{
			ID:        uuid.New(),
			UserID:    aggregate.UserID().Bytes(),
			ProductID: line.ProductID().Bytes(),
			OptionID:  optionID,
			Quantity:  line.Quantity(),
		})
	}

	return dtos
}

// toDomain converts line rows back into a cart aggregate.
func toDomain(userID kernel.UUID, dtos []LineDTO) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		var optionID *kernel.UUID
		if dto.OptionID != nil {
			oID, optionErr := kernel.UUIDFromBytes((*dto.OptionID)[:])
			if optionErr != nil {
				return nil, optionErr
			}
			optionID = &oID
		}

		line, err := cart.NewLine(productID, optionID, dto.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(userID, lines)
}
