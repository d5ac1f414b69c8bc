package dashboard

import (
	"context"
	"strconv"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/employee"
	"github.com/RNiyam/attendance-system/internal/events"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	fieldCheckIns  = "checkins"
	fieldCheckOuts = "checkouts"
	fieldLate      = "late"

	projectionTTL = 48 * time.Hour
)

// KPIKey is the Redis hash holding one day's projected counters.
func KPIKey(day string) string {
	return "attendance:kpi:" + day
}

func seenKey(day string) string {
	return KPIKey(day) + ":seen"
}

// Projection maintains per-day attendance counters in Redis from the
// attendance.recorded stream. Each event id is counted at most once.
type Projection struct {
	rdb    *redis.Client
	loc    *time.Location
	logger *zap.Logger
}

func NewProjection(rdb *redis.Client, loc *time.Location, logger ...*zap.Logger) *Projection {
	l := zap.L().Named("dashboard.projection")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.projection")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Projection{rdb: rdb, loc: loc, logger: l}
}

func (p *Projection) Apply(ctx context.Context, event events.AttendanceRecordedEvent) error {
	day := event.Day(p.loc)

	added, err := p.rdb.SAdd(ctx, seenKey(day), event.EventID).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		p.logger.Debug("duplicate attendance event skipped",
			zap.String("event_id", event.EventID),
			zap.String("day", day),
		)
		return nil
	}

	field := fieldCheckOuts
	if event.Status == attendance.StatusIn {
		field = fieldCheckIns
	}
	late := event.IsLate != nil && *event.IsLate

	_, err = p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, KPIKey(day), field, 1)
		if late {
			pipe.HIncrBy(ctx, KPIKey(day), fieldLate, 1)
		}
		pipe.Expire(ctx, KPIKey(day), projectionTTL)
		pipe.Expire(ctx, seenKey(day), projectionTTL)
		return nil
	})
	if err != nil {
		// Forget the id so redelivery can count it.
		if rerr := p.rdb.SRem(ctx, seenKey(day), event.EventID).Err(); rerr != nil {
			p.logger.Error("release projected event id failed",
				zap.String("event_id", event.EventID),
				zap.Error(rerr),
			)
		}
		return err
	}
	return nil
}

// Read returns the projected counters for day. ok is false when nothing has
// been projected for that day yet.
func (p *Projection) Read(ctx context.Context, day string) (attendance.Counts, bool, error) {
	values, err := p.rdb.HGetAll(ctx, KPIKey(day)).Result()
	if err != nil {
		return attendance.Counts{}, false, err
	}
	if len(values) == 0 {
		return attendance.Counts{}, false, nil
	}

	c := attendance.Counts{
		CheckIns:  parseCounter(values[fieldCheckIns]),
		CheckOuts: parseCounter(values[fieldCheckOuts]),
		Late:      parseCounter(values[fieldLate]),
	}
	c.Records = c.CheckIns + c.CheckOuts
	return c, true, nil
}

// InvalidateRoster drops the cached employee list after lifecycle events.
func (p *Projection) InvalidateRoster(ctx context.Context) error {
	return p.rdb.Del(ctx, employee.EmployeeListCacheKey).Err()
}

func parseCounter(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
