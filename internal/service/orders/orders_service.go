package orders

import (
	"context"
	"time"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/payment"
	"github.com/google/uuid"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, flightID string, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateSeats(ctx context.Context, orderID string, seats []string) error
	SubmitPayment(ctx context.Context, orderID, code string) error
	CancelOrder(ctx context.Context, orderID string) error
}

// Engine is the workflow dispatcher surface the service drives. Calls return
// once the event is accepted; outcomes are observed by polling.
type Engine interface {
	StartOrder(o domain.Order) (domain.Order, error)
	Snapshot(orderID string) (domain.Order, error)
	UpdateSeats(orderID string, seats []string) error
	SubmitPayment(orderID, code string) error
	Cancel(orderID string) error
}

// FlightDirectory answers whether a flight is known to the inventory.
type FlightDirectory interface {
	HasFlight(flightID string) bool
}

type CreateOrderInput struct {
	UserID string   `json:"userId"`
	Seats  []string `json:"seats"`
}

type OrdersService struct {
	engine  Engine
	flights FlightDirectory
}

func NewOrdersService(engine Engine, flights FlightDirectory) *OrdersService {
	return &OrdersService{engine: engine, flights: flights}
}

// CreateOrder validates the request, assigns an order id, and starts the
// workflow. The returned order is in status CREATED; the seat reservation
// runs asynchronously.
func (s *OrdersService) CreateOrder(ctx context.Context, flightID string, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, domain.NewValidationError("userId is required")
	}
	if len(input.Seats) == 0 {
		return nil, domain.NewValidationError("seats are required")
	}
	if !s.flights.HasFlight(flightID) {
		return nil, domain.ErrFlightNotFound
	}

	order := domain.Order{
		OrderID:   uuid.NewString(),
		FlightID:  flightID,
		UserID:    input.UserID,
		Seats:     append([]string(nil), input.Seats...),
		CreatedAt: time.Now(),
	}

	started, err := s.engine.StartOrder(order)
	if err != nil {
		return nil, err
	}
	return &started, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.engine.Snapshot(orderID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrdersService) UpdateSeats(ctx context.Context, orderID string, seats []string) error {
	if len(seats) == 0 {
		return domain.NewValidationError("seats are required")
	}
	return s.engine.UpdateSeats(orderID, seats)
}

// SubmitPayment validates the code format synchronously; a malformed code is
// rejected with no state change. A valid code is handed to the workflow for
// asynchronous settlement.
func (s *OrdersService) SubmitPayment(ctx context.Context, orderID, code string) error {
	if err := payment.ValidateCode(code); err != nil {
		return domain.NewValidationError("%s", err.Error())
	}
	return s.engine.SubmitPayment(orderID, code)
}

func (s *OrdersService) CancelOrder(ctx context.Context, orderID string) error {
	return s.engine.Cancel(orderID)
}

var _ OrderUseCase = (*OrdersService)(nil)
