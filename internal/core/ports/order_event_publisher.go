package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// OrderEventPublisher notifies downstream consumers about order lifecycle
// changes. Publishing happens after the owning transaction commits; delivery
// is best effort and failures must not roll the state change back.
type OrderEventPublisher interface {
	// PublishStatusChanged emits the order's current status.
	PublishStatusChanged(ctx context.Context, aggregate *order.Order) error
}
