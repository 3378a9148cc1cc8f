package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripforge/flightbooking/config"
	"github.com/tripforge/flightbooking/internal/bootstrap"
	"github.com/tripforge/flightbooking/internal/cache"
	"github.com/tripforge/flightbooking/internal/catalog"
	"github.com/tripforge/flightbooking/internal/kafka"
	"github.com/tripforge/flightbooking/internal/metrics"
	"github.com/tripforge/flightbooking/internal/repository"
	bookingService "github.com/tripforge/flightbooking/internal/service/booking"
	flightService "github.com/tripforge/flightbooking/internal/service/flights"
	"github.com/tripforge/flightbooking/internal/service/payments"
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var flightRepo repository.FlightRepository
	var bookingRepo repository.BookingRepository

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		flightRepo = repository.NewPGFlightRepository(pool)
		bookingRepo = repository.NewPGBookingRepository(pool)
		logger.Info("using postgres storage", "host", cfg.Database.Host)
	default:
		flightRepo = repository.NewMemFlightRepository(catalog.Flights())
		bookingRepo = repository.NewMemBookingRepository()
		logger.Info("using in-memory storage")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.ServiceName)
	}

	flightOpts := []flightService.FlightServiceOption{}
	if m != nil {
		flightOpts = append(flightOpts, flightService.WithMetrics(m))
	}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		flightOpts = append(flightOpts, flightService.WithCache(redisCache))
		logger.Info("search cache enabled", "addr", cfg.Redis.Addr)
	}
	flightSvc := flightService.NewFlightService(flightRepo, catalog.Airports(), catalog.Airlines(), flightOpts...)

	processor := payments.NewMockProcessor(
		payments.WithLatency(time.Duration(cfg.Payment.LatencyMs)*time.Millisecond),
		payments.WithDeclineSuffix(cfg.Payment.DeclineSuffix),
	)

	bookingOpts := []bookingService.BookingServiceOption{}
	if m != nil {
		bookingOpts = append(bookingOpts, bookingService.WithMetrics(m))
	}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, bookingService.WithProducer(producer, cfg.Kafka.BookingTopic))
		logger.Info("booking events enabled", "topic", cfg.Kafka.BookingTopic)
	}
	bookingSvc := bookingService.NewBookingService(bookingRepo, processor, logger, bookingOpts...)

	logger.Info("starting server", "address", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, flightSvc, bookingSvc, m); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("server stopped")
}
