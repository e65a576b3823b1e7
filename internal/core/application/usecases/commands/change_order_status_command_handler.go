package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies role-guarded order status
// transitions. The transition table, role checks, rider-match checks, and
// completion stamping all live in the order aggregate; the handler supplies
// the transaction and the optimistic status guard against concurrent writers.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for order status
// transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command. The persisted update only
// applies while the order still carries the status it was loaded with, so a
// transition raced by another writer fails as a state conflict instead of
// overwriting it.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	loaded := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, loaded); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best effort after commit; the publisher reports its own failures.
	_ = h.publisher.PublishStatusChanged(ctx, aggregate)

	return nil
}
