package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightorders/config"
	"github.com/Domenick1991/flightorders/internal/bootstrap"
	"github.com/Domenick1991/flightorders/internal/cache"
	"github.com/Domenick1991/flightorders/internal/inventory"
	"github.com/Domenick1991/flightorders/internal/kafka"
	"github.com/Domenick1991/flightorders/internal/payment"
	"github.com/Domenick1991/flightorders/internal/repository"
	"github.com/Domenick1991/flightorders/internal/service/flights"
	"github.com/Domenick1991/flightorders/internal/service/orders"
	"github.com/Domenick1991/flightorders/internal/workflow"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inv := inventory.New()
	for _, f := range cfg.Flights {
		inv.AddFlight(f.ID, f.SeatNumbers())
		log.Printf("seeded flight %s with %d seats", f.ID, len(f.SeatNumbers()))
	}

	var recorderOpts []orders.RecorderOption
	var archive repository.OrderArchive

	if cfg.Database.Enabled {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		archive = repository.NewOrderArchive(pool)
		recorderOpts = append(recorderOpts, orders.WithArchive(archive))
	}

	var seatCache *cache.RedisCache
	if cfg.Redis.Enabled {
		seatCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SeatMapCacheTTLSeconds)*time.Second)
		recorderOpts = append(recorderOpts, orders.WithSeatMapCache(seatCache))
	}

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		recorderOpts = append(recorderOpts, orders.WithProducer(producer, cfg.Kafka.OrderEventsTopic, cfg.Kafka.NotificationsTopic))
	}

	processor := payment.NewProcessor(
		&payment.SimulatedGateway{FailureRate: cfg.Booking.PaymentFailureRate, MaxDelay: 2 * time.Second},
		cfg.Booking.PaymentMaxAttempts,
		time.Duration(cfg.Booking.PaymentBackoffSeconds)*time.Second,
		time.Duration(cfg.Booking.PaymentTimeoutSeconds)*time.Second,
	)

	recorder := orders.NewStateRecorder(recorderOpts...)
	dispatcher := workflow.NewDispatcher(inv, processor, recorder, time.Duration(cfg.Booking.ReservationTimeoutSeconds)*time.Second)
	defer dispatcher.Shutdown()

	orderService := orders.NewOrdersService(dispatcher, inv)

	var flightCache flights.Cache
	if seatCache != nil {
		flightCache = seatCache
	}
	flightService := flights.NewFlightService(inv, flightCache, dispatcher, archive)

	if err := bootstrap.Run(ctx, cfg, flightService, orderService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
