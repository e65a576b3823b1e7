package commands

import (
	"context"

	"marketplace/internal/core/domain/model/settlement"
)

// MarkSettlementPaidCommandHandler records commission payouts. A settlement
// can be paid exactly once; the aggregate rejects a second payout and the
// repository's status guard rejects a concurrent one.
type MarkSettlementPaidCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewMarkSettlementPaidCommandHandler creates a handler for payout records.
func NewMarkSettlementPaidCommandHandler(uowFactory SettlementUoWFactory) MarkSettlementPaidCommandHandler {
	return MarkSettlementPaidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payout command.
func (h MarkSettlementPaidCommandHandler) Handle(ctx context.Context, cmd MarkSettlementPaidCommand) error {
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

	settlementRepo := uow.SettlementRepository()

	aggregate, err := settlementRepo.Get(ctx, cmd.SettlementID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkPaid(); err != nil {
		return err
	}

	if err = settlementRepo.Update(ctx, aggregate, settlement.StatusPending); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
