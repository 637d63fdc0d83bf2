package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrSeatNotFound   = errors.New("seat does not exist")

	// ErrOrderFinished is returned for events delivered to an order that
	// already reached a terminal status. Terminal orders never reopen.
	ErrOrderFinished = errors.New("order is in a terminal state")

	// ErrOrderNotReserved is returned when an event requires the order to be
	// holding reserved seats and it is not.
	ErrOrderNotReserved = errors.New("order has no active seat reservation")
)

// ValidationError is a synchronous request-level error. It causes no state
// change and is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SeatConflictError reports seats that could not be reserved because another
// order holds them. Seat contention is a business outcome, not a transient
// fault, so it is never retried.
type SeatConflictError struct {
	FlightID string
	Seats    []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not available on flight %s: %s", e.FlightID, strings.Join(e.Seats, ", "))
}
