package services

import (
	"sort"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// RankedOrder pairs an available order with the haversine distance from the
// rider to the order's store. DistanceKm is nil when either the rider's
// location or the store's location is unknown.
type RankedOrder struct {
	Order      *order.Order
	DistanceKm *float64
}

// RiderMatcher ranks the pool of available orders for a rider by proximity
// to each order's pickup store. Matching is advisory only: the ranking helps
// a rider choose, while the claim itself is decided atomically in storage.
type RiderMatcher struct{}

// NewRiderMatcher creates a new RiderMatcher instance.
func NewRiderMatcher() RiderMatcher {
	return RiderMatcher{}
}

// Rank filters the orders down to the available pool (accepted by the store
// and unassigned) and sorts them nearest-first from riderLocation to each
// order's store. Orders without a measurable distance sort after those with
// one; ties break by creation time, then by order id, so the ranking is
// deterministic.
func (m RiderMatcher) Rank(
	orders []*order.Order,
	riderLocation *kernel.GeoPoint,
	storeLocations map[kernel.UUID]kernel.GeoPoint,
) ([]RankedOrder, error) {
	ranked := make([]RankedOrder, 0, len(orders))

	for _, candidate := range orders {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if !candidate.IsAvailable() {
			continue
		}

		entry := RankedOrder{Order: candidate}
		if riderLocation != nil {
			if storeLocation, ok := storeLocations[candidate.StoreID()]; ok {
				distance, err := riderLocation.DistanceKm(storeLocation)
				if err != nil {
					return nil, err
				}
				entry.DistanceKm = &distance
			}
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i], ranked[j]

		if (left.DistanceKm == nil) != (right.DistanceKm == nil) {
			return left.DistanceKm != nil
		}
		if left.DistanceKm != nil && *left.DistanceKm != *right.DistanceKm {
			return *left.DistanceKm < *right.DistanceKm
		}
		if !left.Order.CreatedAt().Equal(right.Order.CreatedAt()) {
			return left.Order.CreatedAt().Before(right.Order.CreatedAt())
		}

		return left.Order.ID().String() < right.Order.ID().String()
	})

	return ranked, nil
}
