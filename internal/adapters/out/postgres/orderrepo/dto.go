// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It handles the conversion between the order aggregate
// and its relational representation across the orders and order_items tables.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as text so the claimable-pool and settlement queries read
// naturally, and indexed together with the rider assignment.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;index"`
	StoreID       uuid.UUID  `gorm:"type:uuid;index"`
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`
	TotalPrice    int64
	Status        string `gorm:"index"`
	Address       string
	ReceiverName  string
	ReceiverPhone string
	DayLabel      string
	TimeLabel     string
	CreatedAt     time.Time
	CompletedAt   *time.Time
	Items         []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item row belonging to an order. Line items are
// written once at order creation and never updated afterwards.
type ItemDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	ProductID uuid.UUID  `gorm:"type:uuid"`
	OptionID  *uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		var optionID *uuid.UUID
		if id := item.OptionID(); id != nil {
			raw := id.Bytes()
			optionID = &raw
		}

		items = append(items, ItemDTO{
			ID:        uuid.New(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			OptionID:  optionID,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	destination := aggregate.Destination()
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		StoreID:       aggregate.StoreID().Bytes(),
		RiderID:       riderID,
		TotalPrice:    aggregate.TotalPrice(),
		Status:        aggregate.Status().String(),
		Address:       destination.Address(),
		ReceiverName:  destination.ReceiverName(),
		ReceiverPhone: destination.ReceiverPhone(),
		DayLabel:      destination.DayLabel(),
		TimeLabel:     destination.TimeLabel(),
		CreatedAt:     aggregate.CreatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order aggregate, restoring the
// stored price snapshot without recomputation.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	destination, err := order.NewDestination(
		dto.Address, dto.ReceiverName, dto.ReceiverPhone, dto.DayLabel, dto.TimeLabel)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		userID,
		storeID,
		items,
		dto.TotalPrice,
		status,
		riderID,
		destination,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	var optionID *kernel.UUID
	if dto.OptionID != nil {
		oID, optionErr := kernel.UUIDFromBytes((*dto.OptionID)[:])
		if optionErr != nil {
			return order.Item{}, optionErr
		}

		optionID = &oID
	}

	return order.NewItem(productID, optionID, dto.Quantity, dto.UnitPrice)
}
