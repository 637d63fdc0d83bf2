package orders

import (
	"context"
	"testing"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) StartOrder(o domain.Order) (domain.Order, error) {
	args := m.Called(o)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockEngine) Snapshot(orderID string) (domain.Order, error) {
	args := m.Called(orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockEngine) UpdateSeats(orderID string, seats []string) error {
	args := m.Called(orderID, seats)
	return args.Error(0)
}

func (m *MockEngine) SubmitPayment(orderID, code string) error {
	args := m.Called(orderID, code)
	return args.Error(0)
}

func (m *MockEngine) Cancel(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

type MockFlightDirectory struct {
	mock.Mock
}

func (m *MockFlightDirectory) HasFlight(flightID string) bool {
	args := m.Called(flightID)
	return args.Bool(0)
}

func TestOrdersService_CreateOrder_Success(t *testing.T) {
	engine := &MockEngine{}
	flights := &MockFlightDirectory{}
	service := NewOrdersService(engine, flights)

	flights.On("HasFlight", "FL123").Return(true).Once()
	engine.On("StartOrder", mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderID != "" && o.FlightID == "FL123" && o.UserID == "alice" && len(o.Seats) == 2
	})).Return(domain.Order{
		OrderID:  "order-1",
		FlightID: "FL123",
		UserID:   "alice",
		Seats:    []string{"A1", "A2"},
		Status:   domain.OrderStatusCreated,
	}, nil).Once()

	order, err := service.CreateOrder(context.Background(), "FL123", CreateOrderInput{
		UserID: "alice",
		Seats:  []string{"A1", "A2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.OrderID)
	assert.Equal(t, domain.OrderStatusCreated, order.Status)

	engine.AssertExpectations(t)
	flights.AssertExpectations(t)
}

func TestOrdersService_CreateOrder_ValidationErrors(t *testing.T) {
	service := NewOrdersService(&MockEngine{}, &MockFlightDirectory{})
	ctx := context.Background()

	testCases := []struct {
		name  string
		input CreateOrderInput
	}{
		{name: "missing userId", input: CreateOrderInput{Seats: []string{"A1"}}},
		{name: "missing seats", input: CreateOrderInput{UserID: "bob"}},
		{name: "empty seats", input: CreateOrderInput{UserID: "bob", Seats: []string{}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := service.CreateOrder(ctx, "FL123", tc.input)
			assert.Nil(t, order)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestOrdersService_CreateOrder_UnknownFlight(t *testing.T) {
	engine := &MockEngine{}
	flights := &MockFlightDirectory{}
	service := NewOrdersService(engine, flights)

	flights.On("HasFlight", "FL999").Return(false).Once()

	order, err := service.CreateOrder(context.Background(), "FL999", CreateOrderInput{
		UserID: "alice",
		Seats:  []string{"A1"},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	engine.AssertNotCalled(t, "StartOrder", mock.Anything)
}

func TestOrdersService_GetOrder(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	engine.On("Snapshot", "order-1").Return(domain.Order{
		OrderID: "order-1",
		Status:  domain.OrderStatusSeatsReserved,
	}, nil).Once()

	order, err := service.GetOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSeatsReserved, order.Status)
	engine.AssertExpectations(t)
}

func TestOrdersService_GetOrder_NotFound(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	engine.On("Snapshot", "missing").Return(domain.Order{}, domain.ErrOrderNotFound).Once()

	order, err := service.GetOrder(context.Background(), "missing")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrdersService_UpdateSeats_EmptyRejected(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	err := service.UpdateSeats(context.Background(), "order-1", nil)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	engine.AssertNotCalled(t, "UpdateSeats", mock.Anything, mock.Anything)
}

func TestOrdersService_SubmitPayment_FormatValidation(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})
	ctx := context.Background()

	for _, code := range []string{"1234", "123456", "12a45", ""} {
		err := service.SubmitPayment(ctx, "order-1", code)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr, "code %q must be rejected", code)
	}
	engine.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything)
}

func TestOrdersService_SubmitPayment_ValidCodeForwarded(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	engine.On("SubmitPayment", "order-1", "12345").Return(nil).Once()

	require.NoError(t, service.SubmitPayment(context.Background(), "order-1", "12345"))
	engine.AssertExpectations(t)
}

func TestOrdersService_SubmitPayment_TerminalOrder(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	engine.On("SubmitPayment", "order-1", "12345").Return(domain.ErrOrderFinished).Once()

	err := service.SubmitPayment(context.Background(), "order-1", "12345")
	assert.ErrorIs(t, err, domain.ErrOrderFinished)
}

func TestOrdersService_CancelOrder(t *testing.T) {
	engine := &MockEngine{}
	service := NewOrdersService(engine, &MockFlightDirectory{})

	engine.On("Cancel", "order-1").Return(nil).Once()

	require.NoError(t, service.CancelOrder(context.Background(), "order-1"))
	engine.AssertExpectations(t)
}
