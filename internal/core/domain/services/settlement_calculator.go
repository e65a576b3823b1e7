package services

import (
	"sort"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/settlement"
)

// SettlementCalculator turns a window's completed orders into per-rider
// settlements. The calculator is pure: callers load the orders and persist
// the result; regeneration semantics (delete-then-recreate, paid-window
// protection) live in the application layer.
type SettlementCalculator struct{}

// NewSettlementCalculator creates a new SettlementCalculator instance.
func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// Calculate groups the orders by assigned rider and produces one Pending
// settlement per rider, with commission = order count * ratePerOrder.
//
// Orders that are not Completed, completed outside the window, or that have
// no assigned rider are skipped rather than rejected: the window query may
// legitimately over-fetch, and an unassigned completed order has nobody to
// pay. Output is sorted by rider id, so regeneration of the same input is
// deterministic.
func (c SettlementCalculator) Calculate(
	window settlement.Window,
	orders []*order.Order,
	ratePerOrder int64,
	now time.Time,
) ([]*settlement.Settlement, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	ordersByRider := make(map[kernel.UUID][]kernel.UUID)
	for _, completed := range orders {
		if err := completed.Validate(); err != nil {
			return nil, err
		}

		if completed.Status() != order.Completed || completed.Rider() == nil {
			continue
		}
		if completed.CompletedAt() == nil || !window.Contains(*completed.CompletedAt()) {
			continue
		}

		riderID := *completed.Rider()
		ordersByRider[riderID] = append(ordersByRider[riderID], completed.ID())
	}

	riderIDs := make([]kernel.UUID, 0, len(ordersByRider))
	for riderID := range ordersByRider {
		riderIDs = append(riderIDs, riderID)
	}
	sort.Slice(riderIDs, func(i, j int) bool {
		return riderIDs[i].String() < riderIDs[j].String()
	})

	settlements := make([]*settlement.Settlement, 0, len(riderIDs))
	for _, riderID := range riderIDs {
		generated, err := settlement.NewSettlement(
			kernel.NewUUID(), riderID, window, ordersByRider[riderID], ratePerOrder, now)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, generated)
	}

	return settlements, nil
}
