// Package inventory holds the authoritative, concurrency-safe seat map.
// It knows which order holds a seat and nothing else about order business
// logic.
package inventory

import (
	"sync"

	"github.com/Domenick1991/flightorders/internal/domain"
)

type seatState struct {
	status domain.SeatStatus
	heldBy string
}

type flightSeats struct {
	mu    sync.Mutex
	order []string // seat numbers in seeding order, for stable Query output
	seats map[string]*seatState
}

type Inventory struct {
	mu      sync.RWMutex
	flights map[string]*flightSeats
}

func New() *Inventory {
	return &Inventory{flights: make(map[string]*flightSeats)}
}

// AddFlight registers a flight with the given seat numbers, all AVAILABLE.
// Re-adding an existing flight replaces its seat map.
func (inv *Inventory) AddFlight(flightID string, seatNumbers []string) {
	fs := &flightSeats{
		order: append([]string(nil), seatNumbers...),
		seats: make(map[string]*seatState, len(seatNumbers)),
	}
	for _, n := range seatNumbers {
		fs.seats[n] = &seatState{status: domain.SeatStatusAvailable}
	}
	inv.mu.Lock()
	inv.flights[flightID] = fs
	inv.mu.Unlock()
}

// HasFlight reports whether the flight is registered.
func (inv *Inventory) HasFlight(flightID string) bool {
	inv.mu.RLock()
	_, ok := inv.flights[flightID]
	inv.mu.RUnlock()
	return ok
}

func (inv *Inventory) flight(flightID string) (*flightSeats, error) {
	inv.mu.RLock()
	fs, ok := inv.flights[flightID]
	inv.mu.RUnlock()
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return fs, nil
}

// TryReserve atomically transitions every requested seat from AVAILABLE to
// RESERVED held by orderID. Either all seats are taken or none: on conflict
// it returns a SeatConflictError naming the contended seats and changes
// nothing.
func (inv *Inventory) TryReserve(flightID string, seats []string, orderID string) error {
	fs, err := inv.flight(flightID)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.checkAvailable(flightID, seats, orderID); err != nil {
		return err
	}
	for _, n := range seats {
		st := fs.seats[n]
		st.status = domain.SeatStatusReserved
		st.heldBy = orderID
	}
	return nil
}

// checkAvailable verifies every seat exists and is free (or already held by
// orderID). Caller must hold fs.mu.
func (fs *flightSeats) checkAvailable(flightID string, seats []string, orderID string) error {
	var contended []string
	for _, n := range seats {
		st, ok := fs.seats[n]
		if !ok {
			return domain.ErrSeatNotFound
		}
		if st.status == domain.SeatStatusReserved && st.heldBy != orderID {
			contended = append(contended, n)
		}
	}
	if len(contended) > 0 {
		return &domain.SeatConflictError{FlightID: flightID, Seats: contended}
	}
	return nil
}

// Release resets each named seat to AVAILABLE if it is held by orderID.
// Seats held by other orders, already free, or unknown are left untouched,
// so the call is idempotent and safe to repeat.
func (inv *Inventory) Release(flightID string, seats []string, orderID string) {
	fs, err := inv.flight(flightID)
	if err != nil {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, n := range seats {
		st, ok := fs.seats[n]
		if !ok || st.heldBy != orderID {
			continue
		}
		st.status = domain.SeatStatusAvailable
		st.heldBy = ""
	}
}

// Replace atomically swaps orderID's hold from oldSeats to newSeats. On
// conflict nothing changes and the order keeps its old seats. Seats shared
// between old and new stay held throughout.
func (inv *Inventory) Replace(flightID string, oldSeats, newSeats []string, orderID string) error {
	fs, err := inv.flight(flightID)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.checkAvailable(flightID, newSeats, orderID); err != nil {
		return err
	}
	for _, n := range oldSeats {
		if st, ok := fs.seats[n]; ok && st.heldBy == orderID {
			st.status = domain.SeatStatusAvailable
			st.heldBy = ""
		}
	}
	for _, n := range newSeats {
		st := fs.seats[n]
		st.status = domain.SeatStatusReserved
		st.heldBy = orderID
	}
	return nil
}

// Query returns a snapshot of the flight's seats in seeding order.
func (inv *Inventory) Query(flightID string) ([]domain.Seat, error) {
	fs, err := inv.flight(flightID)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]domain.Seat, 0, len(fs.order))
	for _, n := range fs.order {
		st := fs.seats[n]
		out = append(out, domain.Seat{SeatNumber: n, Status: st.status, HeldBy: st.heldBy})
	}
	return out, nil
}

// ResetFlight releases every seat on the flight regardless of holder.
func (inv *Inventory) ResetFlight(flightID string) error {
	fs, err := inv.flight(flightID)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, st := range fs.seats {
		st.status = domain.SeatStatusAvailable
		st.heldBy = ""
	}
	return nil
}
