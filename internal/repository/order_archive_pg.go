package repository

import (
	"context"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderArchive persists order state changes for audit and after-the-fact
// queries. The in-memory workflow engine stays authoritative; the archive is
// write-behind.
type OrderArchive interface {
	SaveOrder(ctx context.Context, o domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	DeleteOrdersByFlight(ctx context.Context, flightID string) error
}

type PGOrderArchive struct {
	db *pgxpool.Pool
}

func NewOrderArchive(db *pgxpool.Pool) OrderArchive {
	return &PGOrderArchive{db: db}
}

func (r *PGOrderArchive) SaveOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.Exec(ctx, `INSERT INTO orders (order_id, flight_id, user_id, seats, status, payment_attempts, reservation_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (order_id) DO UPDATE
		SET seats = EXCLUDED.seats,
		    status = EXCLUDED.status,
		    payment_attempts = EXCLUDED.payment_attempts,
		    reservation_deadline = EXCLUDED.reservation_deadline,
		    updated_at = now()`,
		o.OrderID, o.FlightID, o.UserID, o.Seats, string(o.Status), o.PaymentAttempts, o.ReservationDeadline, o.CreatedAt)
	return err
}

func (r *PGOrderArchive) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT order_id, flight_id, user_id, seats, status, payment_attempts, reservation_deadline, created_at FROM orders WHERE order_id=$1`, orderID)
	var o domain.Order
	var status string
	if err := row.Scan(&o.OrderID, &o.FlightID, &o.UserID, &o.Seats, &status, &o.PaymentAttempts, &o.ReservationDeadline, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

func (r *PGOrderArchive) DeleteOrdersByFlight(ctx context.Context, flightID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE flight_id=$1`, flightID)
	return err
}

var _ OrderArchive = (*PGOrderArchive)(nil)
