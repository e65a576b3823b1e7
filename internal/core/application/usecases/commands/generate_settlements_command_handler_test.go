package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/settlement"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedInWindow(t *testing.T, riderID kernel.UUID) *order.Order {
	t.Helper()
	accepted := newAcceptedOrder(t)
	require.NoError(t, accepted.Assign(riderID))
	riderActor, err := kernel.NewActor(riderID, kernel.RoleRider)
	require.NoError(t, err)
	require.NoError(t, accepted.TransitionTo(order.Delivering, riderActor, accepted.CreatedAt()))
	completedAt := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	require.NoError(t, accepted.TransitionTo(order.Completed, riderActor, completedAt))
	return accepted
}

func TestGenerateSettlementsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	window := testWindow(t)
	cmd, err := commands.NewGenerateSettlementsCommand(window)
	require.NoError(t, err)

	riderA := kernel.NewUUID()
	riderB := kernel.NewUUID()
	completed := []*order.Order{
		completedInWindow(t, riderA),
		completedInWindow(t, riderA),
		completedInWindow(t, riderA),
		completedInWindow(t, riderB),
	}

	settlementRepo := new(MockSettlementRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		settlementRepo.On("HasPaidInWindow", ctx, window).Return(false, nil).Once(),
		orderRepo.On("GetCompletedInWindow", ctx, window).Return(completed, nil).Once(),
		settlementRepo.On("DeletePendingByWindow", ctx, window).Return(nil).Once(),
		settlementRepo.On("Add", ctx, mock.AnythingOfType("*settlement.Settlement")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateSettlementsCommandHandler(factory, 3000)
	settlements, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, settlements, 2)

	byRider := make(map[kernel.UUID]*settlement.Settlement)
	for _, s := range settlements {
		byRider[s.RiderID()] = s
	}
	assert.Equal(t, int64(9000), byRider[riderA].Commission())
	assert.Equal(t, int64(3000), byRider[riderB].Commission())
	settlementRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestGenerateSettlementsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockSettlementUoWFactory)

	handler := commands.NewGenerateSettlementsCommandHandler(factory, 3000)
	_, err := handler.Handle(ctx, commands.GenerateSettlementsCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrGenerateSettlementsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestGenerateSettlementsCommandHandler_Handle_PaidWindowIsLocked(t *testing.T) {
	ctx := t.Context()
	window := testWindow(t)
	cmd, err := commands.NewGenerateSettlementsCommand(window)
	require.NoError(t, err)

	settlementRepo := new(MockSettlementRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		settlementRepo.On("HasPaidInWindow", ctx, window).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateSettlementsCommandHandler(factory, 3000)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSettlementWindowLocked)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	settlementRepo.AssertNotCalled(t, "DeletePendingByWindow")
	settlementRepo.AssertNotCalled(t, "Add")
	orderRepo.AssertNotCalled(t, "GetCompletedInWindow")
}

func TestGenerateSettlementsCommandHandler_Handle_EmptyWindow(t *testing.T) {
	ctx := t.Context()
	window := testWindow(t)
	cmd, err := commands.NewGenerateSettlementsCommand(window)
	require.NoError(t, err)

	settlementRepo := new(MockSettlementRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	// No completed orders: stale pending settlements are still cleared.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		settlementRepo.On("HasPaidInWindow", ctx, window).Return(false, nil).Once(),
		orderRepo.On("GetCompletedInWindow", ctx, window).Return([]*order.Order{}, nil).Once(),
		settlementRepo.On("DeletePendingByWindow", ctx, window).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateSettlementsCommandHandler(factory, 3000)
	settlements, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, settlements)
	settlementRepo.AssertNotCalled(t, "Add")
}

func TestGenerateSettlementsCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	window := testWindow(t)
	cmd, err := commands.NewGenerateSettlementsCommand(window)
	require.NoError(t, err)

	completed := []*order.Order{completedInWindow(t, kernel.NewUUID())}

	settlementRepo := new(MockSettlementRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		settlementRepo.On("HasPaidInWindow", ctx, window).Return(false, nil).Once(),
		orderRepo.On("GetCompletedInWindow", ctx, window).Return(completed, nil).Once(),
		settlementRepo.On("DeletePendingByWindow", ctx, window).Return(errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateSettlementsCommandHandler(factory, 3000)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "delete error")
	settlementRepo.AssertNotCalled(t, "Add")
}
