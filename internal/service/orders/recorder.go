package orders

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/kafka"
	"github.com/Domenick1991/flightorders/internal/repository"
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SeatMapCache interface {
	InvalidateSeatMap(ctx context.Context, flightID string) error
}

// StateRecorder is the workflow Notifier: on every order state change it
// publishes a lifecycle event, upserts the order archive, and drops the
// flight's cached seat map. Every collaborator is optional; failures are
// logged and never block the workflow.
type StateRecorder struct {
	producer           Producer
	orderEventsTopic   string
	notificationsTopic string
	archive            repository.OrderArchive
	cache              SeatMapCache
}

type RecorderOption func(*StateRecorder)

func WithProducer(producer Producer, orderEventsTopic, notificationsTopic string) RecorderOption {
	return func(r *StateRecorder) {
		r.producer = producer
		r.orderEventsTopic = orderEventsTopic
		r.notificationsTopic = notificationsTopic
	}
}

func WithArchive(archive repository.OrderArchive) RecorderOption {
	return func(r *StateRecorder) {
		r.archive = archive
	}
}

func WithSeatMapCache(cache SeatMapCache) RecorderOption {
	return func(r *StateRecorder) {
		r.cache = cache
	}
}

func NewStateRecorder(opts ...RecorderOption) *StateRecorder {
	r := &StateRecorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *StateRecorder) OrderUpdated(ctx context.Context, eventType string, o domain.Order) {
	if r.cache != nil {
		if err := r.cache.InvalidateSeatMap(ctx, o.FlightID); err != nil {
			log.Printf("WARNING: failed to invalidate seat map for flight %s: %v", o.FlightID, err)
		}
	}

	if r.archive != nil {
		if err := r.archive.SaveOrder(ctx, o); err != nil {
			log.Printf("WARNING: failed to archive order %s: %v", o.OrderID, err)
		}
	}

	if r.producer != nil && r.orderEventsTopic != "" {
		event := kafka.OrderEvent{
			Type:          eventType,
			OrderID:       o.OrderID,
			FlightID:      o.FlightID,
			UserID:        o.UserID,
			Seats:         o.Seats,
			Status:        string(o.Status),
			TimeRemaining: o.TimeRemaining(time.Now()),
			At:            time.Now(),
		}
		if err := r.producer.Publish(ctx, r.orderEventsTopic, o.OrderID, event); err != nil {
			log.Printf("WARNING: failed to publish %s event for order %s: %v", eventType, o.OrderID, err)
		}
		if r.notificationsTopic != "" {
			if err := r.producer.Publish(ctx, r.notificationsTopic, o.OrderID, event); err != nil {
				log.Printf("WARNING: failed to publish notification for order %s: %v", o.OrderID, err)
			}
		}
	}
}
