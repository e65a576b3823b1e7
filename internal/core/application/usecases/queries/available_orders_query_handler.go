package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// AvailableOrdersQueryHandler answers "what can I deliver right now" for a
// rider. Unlike the flat listing queries this one goes through ports and the
// matching service, because proximity ranking is domain logic, not a SQL
// projection.
type AvailableOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
	riderRepo ports.RiderRepository
	catalog   ports.Catalog
	matcher   services.RiderMatcher
}

// NewAvailableOrdersQueryHandler creates a handler for the ranked pool.
func NewAvailableOrdersQueryHandler(
	orderRepo ports.OrderRepository,
	riderRepo ports.RiderRepository,
	catalog ports.Catalog,
) AvailableOrdersQueryHandler {
	return AvailableOrdersQueryHandler{
		orderRepo: orderRepo,
		riderRepo: riderRepo,
		catalog:   catalog,
		matcher:   services.NewRiderMatcher(),
	}
}

// Handle loads the available pool and ranks it nearest-first from the
// rider's last known position. A rider who never reported a position still
// gets the full pool, just without distances.
func (h AvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query AvailableOrdersQuery,
) ([]AvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	asking, err := h.riderRepo.Get(ctx, query.RiderID())
	if err != nil {
		return nil, err
	}

	pool, err := h.orderRepo.GetAvailable(ctx)
	if err != nil {
		return nil, err
	}

	storeIDs := make([]kernel.UUID, 0, len(pool))
	seen := make(map[kernel.UUID]struct{}, len(pool))
	for _, available := range pool {
		if _, ok := seen[available.StoreID()]; ok {
			continue
		}
		seen[available.StoreID()] = struct{}{}
		storeIDs = append(storeIDs, available.StoreID())
	}

	storeLocations := map[kernel.UUID]kernel.GeoPoint{}
	if len(storeIDs) > 0 {
		if storeLocations, err = h.catalog.StoreLocations(ctx, storeIDs); err != nil {
			return nil, err
		}
	}

	ranked, err := h.matcher.Rank(pool, asking.Location(), storeLocations)
	if err != nil {
		return nil, err
	}

	responses := make([]AvailableOrdersQueryResponse, 0, len(ranked))
	for _, entry := range ranked {
		responses = append(responses, AvailableOrdersQueryResponse{
			ID:         entry.Order.ID(),
			StoreID:    entry.Order.StoreID(),
			TotalPrice: entry.Order.TotalPrice(),
			CreatedAt:  entry.Order.CreatedAt(),
			DistanceKm: entry.DistanceKm,
		})
	}

	return responses, nil
}
