package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/inventory"
	"github.com/Domenick1991/flightorders/internal/payment"
)

// Processor settles a payment and blocks until its single final outcome.
type Processor interface {
	Process(ctx context.Context, orderID, code string) payment.Result
}

// Notifier observes order state changes. Calls for one order arrive in
// transition order, one at a time.
type Notifier interface {
	OrderUpdated(ctx context.Context, eventType string, o domain.Order)
}

// Dispatcher owns one workflow instance per order. Events for a given order
// are processed strictly in arrival order while unrelated orders progress
// concurrently.
type Dispatcher struct {
	inv            *inventory.Inventory
	payments       Processor
	notifier       Notifier
	reservationTTL time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	orders map[string]*instance
}

func NewDispatcher(inv *inventory.Inventory, payments Processor, notifier Notifier, reservationTTL time.Duration) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		inv:            inv,
		payments:       payments,
		notifier:       notifier,
		reservationTTL: reservationTTL,
		ctx:            ctx,
		cancel:         cancel,
		orders:         make(map[string]*instance),
	}
}

var errDuplicateOrder = errors.New("order already exists")

// StartOrder creates the workflow instance for a new order and kicks off its
// initial seat reservation. The returned snapshot has status CREATED; the
// reservation outcome is observed by polling.
func (d *Dispatcher) StartOrder(o domain.Order) (domain.Order, error) {
	o.Status = domain.OrderStatusCreated
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	w := newInstance(d, o.Clone())

	d.mu.Lock()
	if _, exists := d.orders[o.OrderID]; exists {
		d.mu.Unlock()
		return domain.Order{}, errDuplicateOrder
	}
	d.orders[o.OrderID] = w
	d.mu.Unlock()

	if d.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		d.notifier.OrderUpdated(ctx, EventOrderCreated, o.Clone())
		cancel()
	}

	d.wg.Add(1)
	go w.run()

	return o.Clone(), nil
}

func (d *Dispatcher) lookup(orderID string) (*instance, error) {
	d.mu.RLock()
	w, ok := d.orders[orderID]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return w, nil
}

// Snapshot returns a consistent copy of the order's current state.
func (d *Dispatcher) Snapshot(orderID string) (domain.Order, error) {
	w, err := d.lookup(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	o := w.Snapshot()
	if o.Status == domain.OrderStatusSeatsReserved {
		// Reflect the live countdown rather than the deadline recorded at
		// transition time; the two only differ if a reset is in flight.
		remaining := w.timer.Remaining()
		deadline := time.Now().Add(remaining)
		o.ReservationDeadline = &deadline
	}
	return o, nil
}

// UpdateSeats enqueues a seat-update event. The outcome is observed by
// polling the order.
func (d *Dispatcher) UpdateSeats(orderID string, seats []string) error {
	w, err := d.lookup(orderID)
	if err != nil {
		return err
	}
	if w.status().Terminal() {
		return domain.ErrOrderFinished
	}
	return w.enqueue(event{kind: evUpdateSeats, seats: append([]string(nil), seats...)})
}

// SubmitPayment enqueues a payment-submission event. The code must already
// be format-validated; settlement is asynchronous.
func (d *Dispatcher) SubmitPayment(orderID, code string) error {
	w, err := d.lookup(orderID)
	if err != nil {
		return err
	}
	switch st := w.status(); {
	case st.Terminal():
		return domain.ErrOrderFinished
	case st == domain.OrderStatusPaymentPending:
		return domain.ErrOrderNotReserved
	}
	return w.enqueue(event{kind: evSubmitPayment, code: code})
}

// Cancel enqueues a cancellation. Cancelling an already-terminal order is a
// no-op, so the call is idempotent.
func (d *Dispatcher) Cancel(orderID string) error {
	w, err := d.lookup(orderID)
	if err != nil {
		return err
	}
	if w.status().Terminal() {
		return nil
	}
	if err := w.enqueue(event{kind: evCancel}); err != nil {
		// The instance went terminal between the check and the send.
		return nil
	}
	return nil
}

// RemoveFlightOrders drops every workflow instance for the flight and
// reports how many were removed. Used by the admin flight reset.
func (d *Dispatcher) RemoveFlightOrders(flightID string) int {
	d.mu.Lock()
	var removed []*instance
	for id, w := range d.orders {
		if w.Snapshot().FlightID == flightID {
			removed = append(removed, w)
			delete(d.orders, id)
		}
	}
	d.mu.Unlock()

	for _, w := range removed {
		w.cancel()
	}
	return len(removed)
}

// Shutdown stops every instance and waits for their goroutines to exit.
func (d *Dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
}
