package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ErrSettlementWindowLocked is returned when regenerating a window in which
// some settlement was already paid. Payment records are immutable, so such a
// window can never be regenerated.
var ErrSettlementWindowLocked = errs.NewStateConflictError(
	"settlement window already contains a paid settlement")

// GenerateSettlementsCommandHandler regenerates the settlements of a window
// from the orders completed inside it.
//
// Regeneration is idempotent: the window's Pending settlements are deleted
// and recreated from scratch in one transaction, so running the same window
// twice yields the same result (up to generated ids). A window containing a
// Paid settlement is locked and fails with ErrSettlementWindowLocked before
// anything is touched.
type GenerateSettlementsCommandHandler struct {
	uowFactory   SettlementUoWFactory
	calculator   services.SettlementCalculator
	ratePerOrder int64
}

// NewGenerateSettlementsCommandHandler creates a handler for settlement
// generation. ratePerOrder is the fixed commission per completed order in
// minor currency units.
func NewGenerateSettlementsCommandHandler(
	uowFactory SettlementUoWFactory,
	ratePerOrder int64,
) GenerateSettlementsCommandHandler {
	return GenerateSettlementsCommandHandler{
		uowFactory:   uowFactory,
		calculator:   services.NewSettlementCalculator(),
		ratePerOrder: ratePerOrder,
	}
}

// Handle processes the generation command and returns the settlements
// created for the window, one per rider with completed orders in it.
func (h GenerateSettlementsCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateSettlementsCommand,
) ([]*settlement.Settlement, error) {
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

	settlementRepo := uow.SettlementRepository()
	orderRepo := uow.OrderRepository()

	paid, err := settlementRepo.HasPaidInWindow(ctx, cmd.Window())
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, fmt.Errorf("%w: %s", ErrSettlementWindowLocked, cmd.Window())
	}

	completed, err := orderRepo.GetCompletedInWindow(ctx, cmd.Window())
	if err != nil {
		return nil, err
	}

	settlements, err := h.calculator.Calculate(cmd.Window(), completed, h.ratePerOrder, time.Now())
	if err != nil {
		return nil, err
	}

	if err = settlementRepo.DeletePendingByWindow(ctx, cmd.Window()); err != nil {
		return nil, err
	}

	for _, generated := range settlements {
		if err = settlementRepo.Add(ctx, generated); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return settlements, nil
}
