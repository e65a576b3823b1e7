package commands

import (
	"context"
)

// UpdateRiderLocationCommandHandler persists rider position reports.
type UpdateRiderLocationCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewUpdateRiderLocationCommandHandler creates a handler for position reports.
func NewUpdateRiderLocationCommandHandler(uowFactory RiderUoWFactory) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position report.
func (h UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
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

	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = aggregate.MoveTo(cmd.Location()); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
