package domain

import "time"

type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "CREATED"
	OrderStatusSeatsReserved  OrderStatus = "SEATS_RESERVED"
	OrderStatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusFailed         OrderStatus = "FAILED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusExpired        OrderStatus = "EXPIRED"
)

// Terminal reports whether no further transitions are accepted from s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusFailed, OrderStatusCancelled, OrderStatusExpired:
		return true
	}
	return false
}

// HoldsSeats reports whether an order in status s owns seats in inventory.
func (s OrderStatus) HoldsSeats() bool {
	switch s {
	case OrderStatusSeatsReserved, OrderStatusPaymentPending, OrderStatusConfirmed:
		return true
	}
	return false
}

type Order struct {
	OrderID             string
	FlightID            string
	UserID              string
	Seats               []string
	Status              OrderStatus
	CreatedAt           time.Time
	ReservationDeadline *time.Time
	PaymentAttempts     int
}

// TimeRemaining returns whole seconds until the reservation deadline,
// never negative. Only meaningful while the order is SEATS_RESERVED.
func (o *Order) TimeRemaining(now time.Time) int64 {
	if o.Status != OrderStatusSeatsReserved || o.ReservationDeadline == nil {
		return 0
	}
	remaining := o.ReservationDeadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

// Clone returns a deep copy safe to hand to external readers.
func (o *Order) Clone() Order {
	cp := *o
	cp.Seats = append([]string(nil), o.Seats...)
	if o.ReservationDeadline != nil {
		d := *o.ReservationDeadline
		cp.ReservationDeadline = &d
	}
	return cp
}
