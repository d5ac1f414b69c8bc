package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/RNiyam/attendance-system/internal/config"
	"github.com/RNiyam/attendance-system/internal/dashboard"
	"github.com/RNiyam/attendance-system/internal/events"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka/consumer"
	"github.com/RNiyam/attendance-system/internal/shared/connection"

	"go.uber.org/zap"
)

const consumerGroup = "attendance-dashboard-projection"

// RunConsumer projects attendance and employee lifecycle events into the
// Redis dashboard read model until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	projection := dashboard.NewProjection(rdb, loc, logger)

	attendanceReader := connection.NewKafkaReader(cfg.KafkaBroker, events.AttendanceRecordedTopic, consumerGroup)
	defer attendanceReader.Close()
	lifecycleReader := connection.NewKafkaReader(cfg.KafkaBroker, events.EmployeeLifecycleTopic, consumerGroup+"-roster")
	defer lifecycleReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeAttendanceRecorded(ctx, attendanceReader, projection, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, projection, logger)
	}()

	<-ctx.Done()
	log.Info("consumer shutting down")
	wg.Wait()
	return nil
}
