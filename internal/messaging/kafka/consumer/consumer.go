package consumer

import (
	"context"
	"encoding/json"

	"github.com/RNiyam/attendance-system/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// AttendanceProjector folds recorded attendance events into a read model.
// Apply must tolerate redelivery of the same event.
type AttendanceProjector interface {
	Apply(ctx context.Context, event events.AttendanceRecordedEvent) error
}

// EmployeeCacheInvalidator drops read models that depend on the employee roster.
type EmployeeCacheInvalidator interface {
	InvalidateRoster(ctx context.Context) error
}

func ConsumeAttendanceRecorded(
	ctx context.Context,
	reader MessageReader,
	projector AttendanceProjector,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_recorded")
	log.Info("attendance consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventID == "" {
			log.Error("decode attendance_recorded event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := projector.Apply(ctx, event); err != nil {
			// Left uncommitted so the event is redelivered.
			log.Error("project attendance event failed",
				zap.String("request_id", event.RequestID),
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance message failed", zap.Error(err))
			continue
		}

		log.Debug("attendance event projected",
			zap.String("request_id", event.RequestID),
			zap.String("event_id", event.EventID),
			zap.String("emp_code", event.EmpCode),
			zap.String("status", event.Status),
		)
	}
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	invalidator EmployeeCacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType == events.EventEmployeeRegistered {
			if err := invalidator.InvalidateRoster(ctx); err != nil {
				log.Error("invalidate roster cache failed",
					zap.String("employee_id", event.EmployeeID),
					zap.Error(err),
				)
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee lifecycle event handled",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
			zap.String("emp_code", event.EmpCode),
		)
	}
}
