package flights

import (
	"context"
	"log"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/inventory"
	"github.com/Domenick1991/flightorders/internal/repository"
)

type FlightUseCase interface {
	ListSeats(ctx context.Context, flightID string) (*domain.Flight, error)
	ResetFlight(ctx context.Context, flightID string) error
}

type Cache interface {
	GetSeatMap(ctx context.Context, flightID string) ([]domain.Seat, error)
	SetSeatMap(ctx context.Context, flightID string, seats []domain.Seat) error
	InvalidateSeatMap(ctx context.Context, flightID string) error
}

// OrderRemover drops every workflow instance bound to a flight.
type OrderRemover interface {
	RemoveFlightOrders(flightID string) int
}

type FlightService struct {
	inv     *inventory.Inventory
	cache   Cache
	engine  OrderRemover
	archive repository.OrderArchive
}

func NewFlightService(inv *inventory.Inventory, cache Cache, engine OrderRemover, archive repository.OrderArchive) *FlightService {
	return &FlightService{inv: inv, cache: cache, engine: engine, archive: archive}
}

func (s *FlightService) ListSeats(ctx context.Context, flightID string) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSeatMap(ctx, flightID); err == nil && cached != nil {
			return &domain.Flight{ID: flightID, Seats: cached}, nil
		}
	}

	seats, err := s.inv.Query(flightID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSeatMap(ctx, flightID, seats)
	}
	return &domain.Flight{ID: flightID, Seats: seats}, nil
}

// ResetFlight drops the flight's orders and frees every seat. Admin/testing
// only.
func (s *FlightService) ResetFlight(ctx context.Context, flightID string) error {
	if !s.inv.HasFlight(flightID) {
		return domain.ErrFlightNotFound
	}

	removed := s.engine.RemoveFlightOrders(flightID)
	if err := s.inv.ResetFlight(flightID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateSeatMap(ctx, flightID)
	}
	if s.archive != nil {
		if err := s.archive.DeleteOrdersByFlight(ctx, flightID); err != nil {
			log.Printf("WARNING: failed to purge archived orders for flight %s: %v", flightID, err)
		}
	}
	log.Printf("flight %s reset, %d orders removed", flightID, removed)
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
