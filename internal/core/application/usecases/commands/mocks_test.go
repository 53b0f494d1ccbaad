package commands_test

import (
	"context"
	"testing"
	"time"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/car"
	"rental/internal/core/domain/model/client"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/core/ports"
	"rental/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var clockTime = time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return clockTime }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) FindOpenOrApprovedByCarID(ctx context.Context, carID int64) (*order.Order, error) {
	return orderResult(m.Called(ctx, carID))
}

func (m *MockOrderRepository) FindOpenByClientID(ctx context.Context, clientID int64) (*order.Order, error) {
	return orderResult(m.Called(ctx, clientID))
}

func (m *MockOrderRepository) FindOpenOrApprovedByClientID(ctx context.Context, clientID int64) (*order.Order, error) {
	return orderResult(m.Called(ctx, clientID))
}

func orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCarRepository struct{ mock.Mock }

func (m *MockCarRepository) Get(ctx context.Context, id int64) (car.Car, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(car.Car), args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Get(ctx context.Context, id int64) (client.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(client.Client), args.Error(1)
}

func (m *MockClientRepository) GetForUpdate(ctx context.Context, id int64) (client.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(client.Client), args.Error(1)
}

type MockAddressLookup struct{ mock.Mock }

func (m *MockAddressLookup) Resolve(ctx context.Context, pc kernel.PostalCode) (kernel.Address, error) {
	args := m.Called(ctx, pc)
	return args.Get(0).(kernel.Address), args.Error(1)
}

type MockRentalUoW struct{ mock.Mock }

func (m *MockRentalUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRentalUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRentalUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRentalUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockRentalUoW) CarRepository() ports.CarRepository {
	args := m.Called()
	return args.Get(0).(ports.CarRepository)
}

func (m *MockRentalUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

type MockRentalUoWFactory struct{ mock.Mock }

func (m *MockRentalUoWFactory) Create() commands.RentalUoW {
	args := m.Called()
	return args.Get(0).(commands.RentalUoW)
}

// fixture wires a unit of work whose repositories are always available.
type fixture struct {
	orders    *MockOrderRepository
	cars      *MockCarRepository
	clients   *MockClientRepository
	addresses *MockAddressLookup
	uow       *MockRentalUoW
	factory   *MockRentalUoWFactory
}

func newFixture() *fixture {
	f := &fixture{
		orders:    new(MockOrderRepository),
		cars:      new(MockCarRepository),
		clients:   new(MockClientRepository),
		addresses: new(MockAddressLookup),
		uow:       new(MockRentalUoW),
		factory:   new(MockRentalUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("CarRepository").Return(f.cars).Maybe()
	f.uow.On("ClientRepository").Return(f.clients).Maybe()
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.cars.AssertExpectations(t)
	f.clients.AssertExpectations(t)
	f.addresses.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func (f *fixture) createHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(f.factory, f.addresses, services.ClientRuleOpenOrApproved, fixedClock)
}

func (f *fixture) updateHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(f.factory, f.addresses, services.ClientRuleOpenOrApproved, fixedClock)
}

func notFound(entity string, id any) error {
	return errs.NewObjectNotFoundError(entity, id)
}

func testCar(t *testing.T, id int64, dailyPrice string) car.Car {
	t.Helper()
	c, err := car.RestoreCar(id, "Fiat", "Argo", "ABC1D23", decimal.RequireFromString(dailyPrice), kernel.Active())
	require.NoError(t, err)
	return c
}

func testClient(t *testing.T, id int64) client.Client {
	t.Helper()
	c, err := client.RestoreClient(id, "Ana", "123.456.789-09", "ana@example.com", kernel.Active())
	require.NoError(t, err)
	return c
}

func testAddress(t *testing.T, postalCode, coefficient string) kernel.Address {
	t.Helper()
	pc, err := kernel.NewPostalCode(postalCode)
	require.NoError(t, err)
	addr, err := kernel.NewAddress(pc, "SP", "São Paulo", coefficient)
	require.NoError(t, err)
	return addr
}

func testPostalCode(t *testing.T, value string) kernel.PostalCode {
	t.Helper()
	pc, err := kernel.NewPostalCode(value)
	require.NoError(t, err)
	return pc
}

// testOrder opens an order for client 1 and car 1 at 100/day over the given window.
func testOrder(t *testing.T, start, end time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), 1, 1, start, end,
		testAddress(t, "01310-930", "1004"),
		decimal.NewFromInt(100),
		start,
	)
	require.NoError(t, err)
	return o
}
