package commands_test

import (
	"testing"
	"time"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateCommand(t *testing.T, id kernel.UUID, patch commands.OrderPatch) commands.UpdateOrderCommand {
	t.Helper()
	cmd, err := commands.NewUpdateOrderCommand(id, patch)
	require.NoError(t, err)
	return cmd
}

func TestUpdateOrderCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))

	orders := new(MockOrderRepository)
	cars := new(MockCarRepository)
	clients := new(MockClientRepository)
	uow := new(MockRentalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		uow.On("CarRepository").Return(cars).Once(),
		uow.On("ClientRepository").Return(clients).Once(),
		orders.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRentalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockAddressLookup), 0, fixedClock)
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{Status: ptr("approved")}))

	require.NoError(t, err)
	assert.Equal(t, order.Approved, existing.Status())
	assert.Equal(t, clockTime, existing.UpdatedAt())
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	id := kernel.NewUUID()
	f.orders.On("GetForUpdate", ctx, id).Return(nil, notFound("order", id.String())).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, id, commands.OrderPatch{Status: ptr("approved")}))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_OpenToClosedIsIllegal(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{Status: ptr("closed")}))

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.Open, existing.Status())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_CloseLateUsesStoredEndDate(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime.AddDate(0, 0, -3), clockTime.AddDate(0, 0, -1))
	require.NoError(t, existing.Approve(clockTime.AddDate(0, 0, -3)))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{Status: ptr("closed")}))

	require.NoError(t, err)
	assert.Equal(t, order.Closed, existing.Status())
	require.NotNil(t, existing.LateFee())
	assert.Equal(t, "200.00", existing.LateFee().StringFixed(2))
	require.NotNil(t, existing.CloseDate())
	assert.Equal(t, clockTime, *existing.CloseDate())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_CloseOnTime(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime.AddDate(0, 0, -1), clockTime.AddDate(0, 0, 1))
	require.NoError(t, existing.Approve(clockTime))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{Status: ptr("closed")}))

	require.NoError(t, err)
	assert.Nil(t, existing.LateFee())
	assert.NotNil(t, existing.CloseDate())
}

func TestUpdateOrderCommandHandler_Handle_ChangeCarReprices(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.cars.On("Get", ctx, int64(9)).Return(testCar(t, 9, "50"), nil).Once()
	f.orders.On("FindOpenOrApprovedByCarID", ctx, int64(9)).Return(nil, notFound("order", 9)).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{CarID: ptr(int64(9))}))

	require.NoError(t, err)
	assert.Equal(t, int64(9), existing.CarID())
	assert.Equal(t, "110.04", existing.TotalAmount().StringFixed(2))
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_SameCarIsNotRechecked(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{CarID: ptr(int64(1)), ClientID: ptr(int64(1))}))

	require.NoError(t, err)
	f.cars.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.clients.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ChangeClientToIneligible(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.clients.On("GetForUpdate", ctx, int64(4)).Return(testClient(t, 4), nil).Once()
	f.orders.On("FindOpenOrApprovedByClientID", ctx, int64(4)).
		Return(testOrder(t, clockTime, clockTime.Add(time.Hour)), nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{ClientID: ptr(int64(4))}))

	require.ErrorIs(t, err, errs.ErrIneligible)
	assert.Equal(t, int64(1), existing.ClientID())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ChangeDatesReprices(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	end := clockTime.Add(96 * time.Hour)
	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{EndDate: &end}))

	require.NoError(t, err)
	assert.Equal(t, end, existing.EndDate())
	assert.Equal(t, "410.04", existing.TotalAmount().StringFixed(2))
}

func TestUpdateOrderCommandHandler_Handle_EndDateBeforeStoredStart(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime.Add(48*time.Hour), clockTime.Add(96*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()

	end := clockTime.Add(24 * time.Hour)
	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{EndDate: &end}))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ChangePostalCode(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	newPC := testPostalCode(t, "20040-020")
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.addresses.On("Resolve", ctx, newPC).Return(testAddress(t, "20040-020", "500"), nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{PostalCode: ptr("20040-020")}))

	require.NoError(t, err)
	assert.Equal(t, "5.00", existing.RentalFee().StringFixed(2))
	assert.Equal(t, "205.00", existing.TotalAmount().StringFixed(2))
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_SamePostalCodeSkipsLookup(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{PostalCode: ptr("01310-930")}))

	require.NoError(t, err)
	f.addresses.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_PricingFailureKeepsOrder(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.addresses.On("Resolve", ctx, mock.Anything).Return(testAddress(t, "20040-020", "abc"), nil).Once()

	end := clockTime.Add(72 * time.Hour)
	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{
		EndDate:    &end,
		PostalCode: ptr("20040-020"),
	}))

	require.ErrorIs(t, err, errs.ErrInvalidPricingInput)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_TerminalOrderRejectsChanges(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	require.NoError(t, existing.Cancel(clockTime))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{CarID: ptr(int64(9))}))

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	f.cars.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_TerminalOrderAcceptsStoredValues(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime.AddDate(0, 0, -3), clockTime.AddDate(0, 0, -1))
	require.NoError(t, existing.Approve(clockTime.AddDate(0, 0, -3)))
	require.NoError(t, existing.Close(clockTime.AddDate(0, 0, -1)))
	closedAt := existing.UpdatedAt()
	start := existing.StartDate()
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	f.orders.On("Update", ctx, existing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{
		ClientID:   ptr(existing.ClientID()),
		StartDate:  &start,
		PostalCode: ptr(existing.PostalCode().String()),
	}))

	require.NoError(t, err)
	assert.Equal(t, order.Closed, existing.Status())
	assert.Equal(t, closedAt, existing.UpdatedAt())
	f.clients.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_PastDateRejected(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime, clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	start := clockTime.AddDate(0, 0, -1)

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{StartDate: &start}))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, clockTime, existing.StartDate())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_EndDateEarlierTodayRejected(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	existing := testOrder(t, clockTime.Add(-8*time.Hour), clockTime.Add(48*time.Hour))
	f.orders.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	end := clockTime.Add(-4 * time.Hour)

	h := f.updateHandler()
	err := h.Handle(ctx, newUpdateCommand(t, existing.ID(), commands.OrderPatch{EndDate: &end}))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "the endDate cannot be in the past")
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
