package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrCartIsEmpty is returned when checking out a shopper whose cart holds no
// lines.
var ErrCartIsEmpty = errors.New("cart is empty")

// CheckoutCommandResponse describes one order a checkout created.
type CheckoutCommandResponse struct {
	OrderID    kernel.UUID
	StoreID    kernel.UUID
	TotalPrice int64
}

// CheckoutCommandHandler turns a selection of a shopper's cart into
// per-store orders.
//
// The handler resolves the selected lines against the cart, prices them
// through the catalog, splits them into one Pending order per store, and
// removes the purchased lines from the cart — all inside one transaction, so
// a failed checkout leaves both the cart and the order book untouched. Lines
// the shopper did not select stay in the cart.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	catalog    ports.Catalog
	publisher  ports.OrderEventPublisher
	grouper    services.StoreGrouper
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.Catalog,
	publisher ports.OrderEventPublisher,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
		grouper:    services.NewStoreGrouper(),
	}
}

// Handle processes the checkout command and returns the created orders, one
// per store represented in the selection.
func (h CheckoutCommandHandler) Handle(
	ctx context.Context,
	cmd CheckoutCommand,
) ([]CheckoutCommandResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	orderRepo := uow.OrderRepository()

	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrCartIsEmpty
	}
	if err != nil {
		return nil, err
	}
	if shopperCart.IsEmpty() {
		return nil, ErrCartIsEmpty
	}

	purchased, err := shopperCart.SelectLines(cmd.Selection())
	if err != nil {
		return nil, err
	}

	priced, err := h.catalog.ResolvePricing(ctx, purchased)
	if err != nil {
		return nil, err
	}

	orders, err := h.grouper.Group(cmd.UserID(), priced, cmd.Destination(), time.Now())
	if err != nil {
		return nil, err
	}

	for _, created := range orders {
		if err = orderRepo.Add(ctx, created); err != nil {
			return nil, err
		}
	}

	if err = shopperCart.RemoveMatching(purchased); err != nil {
		return nil, err
	}
	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	results := make([]CheckoutCommandResponse, 0, len(orders))
	for _, created := range orders {
		results = append(results, CheckoutCommandResponse{
			OrderID:    created.ID(),
			StoreID:    created.StoreID(),
			TotalPrice: created.TotalPrice(),
		})
		// Best effort after commit; the publisher reports its own failures.
		_ = h.publisher.PublishStatusChanged(ctx, created)
	}

	return results, nil
}
