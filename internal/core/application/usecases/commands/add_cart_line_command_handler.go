package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/errs"
)

// AddCartLineCommandHandler puts product selections into shopper carts,
// creating the cart on first use.
type AddCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartLineCommandHandler creates a handler for add-to-cart operations.
func NewAddCartLineCommandHandler(uowFactory CartUoWFactory) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-to-cart command. Adding the same product and
// option again merges quantities rather than duplicating the line.
func (h AddCartLineCommandHandler) Handle(ctx context.Context, cmd AddCartLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		shopperCart, err = cart.NewCart(cmd.UserID())
	}
	if err != nil {
		return err
	}

	if err = shopperCart.AddLine(cmd.Line()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
