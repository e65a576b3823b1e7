package commands

import (
	"context"
)

// ReassignOrderCommandHandler processes manager-forced rider changes on
// accepted or delivering orders.
type ReassignOrderCommandHandler struct {
	uowFactory AssignUoWFactory
}

// NewReassignOrderCommandHandler creates a handler for reassignments.
func NewReassignOrderCommandHandler(uowFactory AssignUoWFactory) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reassignment command. The target rider must exist;
// the persisted update is guarded on the status the order was loaded with,
// so a reassignment racing a status transition fails as a state conflict.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) error {
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

	if _, err := riderRepo.Get(ctx, cmd.RiderID()); err != nil {
		return err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	loaded := aggregate.Status()
	if err = aggregate.Reassign(cmd.RiderID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, loaded); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
