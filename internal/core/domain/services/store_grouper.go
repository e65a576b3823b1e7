package services

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// ErrEmptySelection is returned when grouping an empty checkout selection.
var ErrEmptySelection = errors.New("checkout selection is empty")

// PricedLine is one checkout line after catalog resolution: the order item
// with its price snapshot, plus the store that owns the product.
type PricedLine struct {
	StoreID kernel.UUID
	Item    order.Item
}

// StoreGrouper splits one multi-store checkout selection into independent
// per-store orders. Every resulting order gets the same shopper, destination
// and creation timestamp; items land in the order of the store that owns
// them, and each store's order totals only that store's items.
type StoreGrouper struct{}

// NewStoreGrouper creates a new StoreGrouper instance.
func NewStoreGrouper() StoreGrouper {
	return StoreGrouper{}
}

// Group partitions the priced lines by owning store and creates one Pending
// order per store. Store grouping is stable: orders come out in the order
// each store first appears in the selection, and items keep their relative
// order within a store.
func (g StoreGrouper) Group(
	userID kernel.UUID,
	lines []PricedLine,
	destination order.Destination,
	now time.Time,
) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptySelection
	}

	storeSeq := make([]kernel.UUID, 0, len(lines))
	itemsByStore := make(map[kernel.UUID][]order.Item, len(lines))

	for _, line := range lines {
		if err := line.StoreID.Validate(); err != nil {
			return nil, err
		}
		if err := line.Item.Validate(); err != nil {
			return nil, err
		}

		if _, seen := itemsByStore[line.StoreID]; !seen {
			storeSeq = append(storeSeq, line.StoreID)
		}
		itemsByStore[line.StoreID] = append(itemsByStore[line.StoreID], line.Item)
	}

	orders := make([]*order.Order, 0, len(storeSeq))
	for _, storeID := range storeSeq {
		grouped, err := order.NewOrder(
			kernel.NewUUID(), userID, storeID, itemsByStore[storeID], destination, now)
		if err != nil {
			return nil, err
		}
		orders = append(orders, grouped)
	}

	return orders, nil
}
