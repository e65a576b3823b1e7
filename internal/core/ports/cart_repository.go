package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates. A
// shopper has at most one cart, keyed by the shopper's id.
type CartRepository interface {
	// Get retrieves a shopper's cart. A shopper who never added a line gets
	// an error wrapping errs.ErrObjectNotFound.
	Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Save persists the cart's current lines, replacing whatever was stored
	// before. Saving an empty cart clears it.
	Save(ctx context.Context, aggregate *cart.Cart) error
}
