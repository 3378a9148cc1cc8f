// The worker consumes booking events and sends the (mocked) customer
// notifications for them. It shares nothing with the API process but the
// kafka topics.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripforge/flightbooking/config"
	"github.com/tripforge/flightbooking/internal/email"
	"github.com/tripforge/flightbooking/internal/kafka"
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
	if !cfg.Kafka.Enabled {
		log.Fatal("kafka is disabled in config; the worker has nothing to consume")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic, logger)
	defer consumer.Close()

	sender := email.NewSender(logger)

	logger.Info("worker started", "topic", cfg.Kafka.BookingTopic, "group", cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, sender.Send)
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer error: %v", err)
	}
	logger.Info("worker stopped")
}
