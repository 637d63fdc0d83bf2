package domain

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
)

// Seat is one unit of flight inventory. HeldBy is the order id holding the
// seat and is set exactly when Status is RESERVED.
type Seat struct {
	SeatNumber string
	Status     SeatStatus
	HeldBy     string
}

type Flight struct {
	ID    string
	Seats []Seat
}
