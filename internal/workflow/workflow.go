package workflow

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/payment"
)

// Lifecycle event types reported to the Notifier.
const (
	EventOrderCreated   = "order_created"
	EventSeatsReserved  = "seats_reserved"
	EventSeatsUpdated   = "seats_updated"
	EventPaymentPending = "payment_pending"
	EventOrderConfirmed = "order_confirmed"
	EventOrderFailed    = "order_failed"
	EventOrderCancelled = "order_cancelled"
	EventOrderExpired   = "order_expired"
)

type eventKind int

const (
	evUpdateSeats eventKind = iota
	evSubmitPayment
	evCancel
	evTimerFired
	evPaymentResult
)

type event struct {
	kind    eventKind
	seats   []string
	code    string
	gen     uint64
	payment payment.Result
}

// instance is the per-order workflow. All order mutations happen on its run
// goroutine, one event at a time; external readers get copies via Snapshot.
type instance struct {
	d      *Dispatcher
	events chan event
	timer  *reservationTimer

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.RWMutex
	order domain.Order
}

func newInstance(d *Dispatcher, o domain.Order) *instance {
	ctx, cancel := context.WithCancel(d.ctx)
	w := &instance{
		d:      d,
		events: make(chan event, 32),
		ctx:    ctx,
		cancel: cancel,
		order:  o,
	}
	w.timer = newReservationTimer(d.reservationTTL, func(gen uint64) {
		// Delivered as an ordinary event so it serializes with the rest.
		_ = w.enqueue(event{kind: evTimerFired, gen: gen})
	})
	return w
}

// enqueue hands an event to the run goroutine. It fails once the instance
// has stopped accepting events (terminal order or shutdown).
func (w *instance) enqueue(ev event) error {
	select {
	case w.events <- ev:
		return nil
	case <-w.ctx.Done():
		return domain.ErrOrderFinished
	}
}

func (w *instance) Snapshot() domain.Order {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.order.Clone()
}

func (w *instance) status() domain.OrderStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.order.Status
}

func (w *instance) run() {
	defer w.d.wg.Done()
	defer w.cancel()

	w.reserveInitial()

	for !w.status().Terminal() {
		select {
		case <-w.ctx.Done():
			return
		case ev := <-w.events:
			w.handle(ev)
		}
	}
}

// reserveInitial is the CREATED transition: the order attempts to take its
// requested seats before processing any external event.
func (w *instance) reserveInitial() {
	o := w.Snapshot()

	err := w.d.inv.TryReserve(o.FlightID, o.Seats, o.OrderID)
	if err != nil {
		var conflict *domain.SeatConflictError
		if !errors.As(err, &conflict) {
			log.Printf("order %s: initial reservation rejected: %v", o.OrderID, err)
		}
		w.transition(func(o *domain.Order) {
			o.Status = domain.OrderStatusFailed
		})
		w.notify(EventOrderFailed)
		return
	}

	deadline := w.timer.Start()
	w.transition(func(o *domain.Order) {
		o.Status = domain.OrderStatusSeatsReserved
		o.ReservationDeadline = &deadline
	})
	w.notify(EventSeatsReserved)
}

func (w *instance) handle(ev event) {
	switch ev.kind {
	case evUpdateSeats:
		w.handleUpdateSeats(ev.seats)
	case evSubmitPayment:
		w.handleSubmitPayment(ev.code)
	case evCancel:
		w.handleCancel()
	case evTimerFired:
		w.handleTimerFired(ev.gen)
	case evPaymentResult:
		w.handlePaymentResult(ev.payment)
	}
}

func (w *instance) handleUpdateSeats(newSeats []string) {
	o := w.Snapshot()
	if o.Status != domain.OrderStatusSeatsReserved {
		log.Printf("order %s: seat update ignored in status %s", o.OrderID, o.Status)
		return
	}

	if err := w.d.inv.Replace(o.FlightID, o.Seats, newSeats, o.OrderID); err != nil {
		// The swap is atomic, so the order still holds its previous seats.
		// The update is rejected and the timer keeps its old deadline.
		log.Printf("order %s: seat update rejected: %v", o.OrderID, err)
		return
	}

	deadline := w.timer.Reset()
	w.transition(func(o *domain.Order) {
		o.Seats = append([]string(nil), newSeats...)
		o.ReservationDeadline = &deadline
	})
	w.notify(EventSeatsUpdated)
}

func (w *instance) handleSubmitPayment(code string) {
	o := w.Snapshot()
	if o.Status != domain.OrderStatusSeatsReserved {
		log.Printf("order %s: payment ignored in status %s", o.OrderID, o.Status)
		return
	}

	// The reservation countdown stops here; the payment step has its own
	// bounded budget and ends in a terminal status either way.
	w.timer.Stop()
	w.transition(func(o *domain.Order) {
		o.Status = domain.OrderStatusPaymentPending
		o.ReservationDeadline = nil
	})
	w.notify(EventPaymentPending)

	go func() {
		res := w.d.payments.Process(w.ctx, o.OrderID, code)
		_ = w.enqueue(event{kind: evPaymentResult, payment: res})
	}()
}

func (w *instance) handlePaymentResult(res payment.Result) {
	o := w.Snapshot()
	if o.Status != domain.OrderStatusPaymentPending {
		// The order was cancelled while the payment was in flight; the
		// terminal status stands and the late result is dropped.
		log.Printf("order %s: stale payment result discarded in status %s", o.OrderID, o.Status)
		return
	}

	if res.Success {
		w.transition(func(o *domain.Order) {
			o.Status = domain.OrderStatusConfirmed
			o.PaymentAttempts = res.Attempts
		})
		log.Printf("order %s confirmed, transaction %s", o.OrderID, res.TransactionID)
		w.notify(EventOrderConfirmed)
		return
	}

	log.Printf("order %s: payment failed: %v", o.OrderID, res.Err)
	w.d.inv.Release(o.FlightID, o.Seats, o.OrderID)
	w.transition(func(o *domain.Order) {
		o.Status = domain.OrderStatusFailed
		o.PaymentAttempts = res.Attempts
	})
	w.notify(EventOrderFailed)
}

func (w *instance) handleCancel() {
	o := w.Snapshot()
	if o.Status.Terminal() {
		return
	}

	w.timer.Stop()
	w.d.inv.Release(o.FlightID, o.Seats, o.OrderID)
	w.transition(func(o *domain.Order) {
		o.Status = domain.OrderStatusCancelled
		o.ReservationDeadline = nil
	})
	w.notify(EventOrderCancelled)
}

func (w *instance) handleTimerFired(gen uint64) {
	o := w.Snapshot()
	if o.Status != domain.OrderStatusSeatsReserved || !w.timer.Current(gen) {
		// Stale fire: the timer was reset or the order moved on.
		return
	}

	w.timer.Stop()
	w.d.inv.Release(o.FlightID, o.Seats, o.OrderID)
	w.transition(func(o *domain.Order) {
		o.Status = domain.OrderStatusExpired
		o.ReservationDeadline = nil
	})
	log.Printf("order %s: reservation expired, seats released", o.OrderID)
	w.notify(EventOrderExpired)
}

func (w *instance) transition(mutate func(o *domain.Order)) {
	w.mu.Lock()
	mutate(&w.order)
	w.mu.Unlock()
}

func (w *instance) notify(eventType string) {
	if w.d.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w.d.notifier.OrderUpdated(ctx, eventType, w.Snapshot())
}
