package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RNiyam/attendance-system/internal/config"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka/producer"
	"github.com/RNiyam/attendance-system/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker relays pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	conns, err := connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer conns.Close(context.Background())

	if err := kafka.EnsureSchema(context.Background(), conns.DB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(conns.DB), kafkaWriter, logger, outboxPollInterval)
	}()

	<-ctx.Done()
	log.Info("worker shutting down")
	<-done
	return nil
}
