package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
)

// Catalog resolves product references against the product catalog. Checkout
// snapshots prices through it; rider matching uses it for store pickup
// locations.
type Catalog interface {
	// ResolvePricing turns cart lines into priced order lines, resolving each
	// product's current price and owning store. A reference to a product or
	// option the catalog does not know fails with an error wrapping
	// errs.ErrObjectNotFound.
	ResolvePricing(ctx context.Context, lines []cart.Line) ([]services.PricedLine, error)

	// StoreLocations returns the pickup locations of the given stores. Stores
	// without a registered location are simply absent from the result.
	StoreLocations(ctx context.Context, storeIDs []kernel.UUID) (map[kernel.UUID]kernel.GeoPoint, error)
}
