package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// AssignOrderCommandHandler processes a rider's exclusive claim on an
// available order.
//
// The claim is checked twice: once on the loaded aggregate, for a fast
// domain-level answer, and once by the repository's conditional write, which
// is what actually decides a race. Two riders claiming the same order
// concurrently both pass the first check; exactly one survives the second.
type AssignOrderCommandHandler struct {
	uowFactory AssignUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAssignOrderCommandHandler creates a handler for rider claims.
func NewAssignOrderCommandHandler(
	uowFactory AssignUoWFactory,
	publisher ports.OrderEventPublisher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim command.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	riderRepo := uow.RiderRepository()
	orderRepo := uow.OrderRepository()

	if _, err := riderRepo.Get(ctx, cmd.Actor().ID()); err != nil {
		return err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Assign(cmd.Actor().ID()); err != nil {
		return err
	}

	if err = orderRepo.Assign(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best effort after commit; the publisher reports its own failures.
	_ = h.publisher.PublishStatusChanged(ctx, aggregate)

	return nil
}
