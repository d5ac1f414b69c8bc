package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	"github.com/RNiyam/attendance-system/internal/employee"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/events"
	"github.com/RNiyam/attendance-system/internal/face"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver selects the enrolled employee a verification is checked against.
type Resolver func(ctx context.Context, accessor employee.Accessor) (*employee.Enrolled, error)

// ByCode resolves directly by employee code.
func ByCode(code string) Resolver {
	return func(ctx context.Context, accessor employee.Accessor) (*employee.Enrolled, error) {
		return accessor.ByCode(ctx, code)
	}
}

// ByCaller prefers the employee linked to the authenticated caller and falls
// back to a plain code lookup.
func ByCaller(userID, code string) Resolver {
	return func(ctx context.Context, accessor employee.Accessor) (*employee.Enrolled, error) {
		return accessor.ByUserAndCode(ctx, userID, code)
	}
}

type Mode int

const (
	// ModeToggle records IN when the employee is not clocked in and OUT
	// otherwise.
	ModeToggle Mode = iota
	// ModeClockOut only records OUT, fails when there is no open session and
	// adds ShiftMetrics to the outcome.
	ModeClockOut
)

type Request struct {
	Resolve Resolver
	Image   string
	Mode    Mode
}

type Outcome struct {
	Employee     employee.Enrolled
	Event        Event
	Verification face.Result
	CheckIn      *CheckInMetrics
	CheckOut     *CheckOutMetrics
	Shift        *ShiftMetrics
}

type EngineOptions struct {
	Policy   Policy
	Schedule Schedule
	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine is the attendance state machine. Each employee is either clocked
// in (last event IN) or not; every accepted verification appends exactly
// one event that moves between the two.
type Engine struct {
	db        *sql.DB
	accessor  employee.Accessor
	employees employee.Repository
	ledger    Repository
	face      face.Client
	outbox    kafka.OutboxRepository
	policy    Policy
	schedule  Schedule
	now       func() time.Time
	logger    *zap.Logger
}

func NewEngine(
	db *sql.DB,
	accessor employee.Accessor,
	employees employee.Repository,
	ledger Repository,
	faceClient face.Client,
	outboxRepo kafka.OutboxRepository,
	opts EngineOptions,
	logger ...*zap.Logger,
) *Engine {
	l := zap.L().Named("attendance.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.engine")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		db:        db,
		accessor:  accessor,
		employees: employees,
		ledger:    ledger,
		face:      faceClient,
		outbox:    outboxRepo,
		policy:    opts.Policy,
		schedule:  opts.Schedule,
		now:       now,
		logger:    l,
	}
}

// Record resolves the employee, verifies the image against the stored
// embedding, applies the acceptance policy and appends the next ledger
// event. Nothing is written unless every step succeeds.
//
// The remote verification runs before the transaction. The read of the
// last event and the insert run under a row lock on the employee, so
// concurrent requests for one employee are applied one after another.
func (e *Engine) Record(ctx context.Context, req Request) (Outcome, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, e.logger)

	if err := face.ValidateImage(req.Image); err != nil {
		return Outcome{}, err
	}

	empl, err := req.Resolve(ctx, e.accessor)
	if err != nil {
		log.Warn("attendance employee resolution failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}

	result, err := e.face.Verify(ctx, empl.Embedding, req.Image)
	if err != nil {
		log.Warn("attendance verification call failed",
			zap.String("request_id", rid),
			zap.String("emp_code", empl.Code),
			zap.Error(err),
		)
		return Outcome{}, err
	}

	if err := e.policy.Evaluate(result); err != nil {
		log.Warn("attendance verification rejected",
			zap.String("request_id", rid),
			zap.String("emp_code", empl.Code),
			zap.Bool("match", result.Match),
			zap.Float64("confidence", result.Confidence),
			zap.Float64("distance", result.Distance),
			zap.Error(err),
		)
		return Outcome{}, err
	}
	log.Debug("attendance verification passed",
		zap.String("request_id", rid),
		zap.String("emp_code", empl.Code),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("distance", result.Distance),
	)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	if err := e.employees.WithTx(tx).LockByID(ctx, empl.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Outcome{}, employeeerrors.ErrEmployeeNotFound
		}
		log.Error("attendance employee lock failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}

	ledger := e.ledger.WithTx(tx)
	last, err := ledger.LastEvent(ctx, empl.ID)
	if err != nil {
		log.Error("attendance last event lookup failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}

	now := e.now()
	out := Outcome{
		Employee:     *empl,
		Verification: result,
		Event: Event{
			ID:         uuid.New(),
			EmployeeID: empl.ID,
			Confidence: result.Confidence,
			CreatedAt:  now,
		},
	}

	switch {
	case last != nil && last.IsIn():
		m := e.schedule.CheckOut(*last, now)
		out.Event.Status = StatusOut
		out.Event.ClockInTime = &m.ClockInTime
		out.Event.ClockOutTime = &m.ClockOutTime
		out.Event.TotalHours = &m.TotalHours
		out.CheckOut = &m
		if req.Mode == ModeClockOut {
			shift := e.schedule.Shift(last.CreatedAt, now)
			out.Shift = &shift
		}
	case req.Mode == ModeClockOut:
		return Outcome{}, attendanceerrors.ErrNotClockedIn
	default:
		m := e.schedule.CheckIn(now)
		out.Event.Status = StatusIn
		out.Event.ClockInTime = &m.ClockInTime
		out.Event.IsLate = &m.IsLate
		out.Event.ExpectedTime = &m.ExpectedTime
		out.CheckIn = &m
	}

	if err := ledger.Append(ctx, &out.Event); err != nil {
		log.Error("attendance append failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}
	if err := e.queueRecorded(ctx, tx, out); err != nil {
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return Outcome{}, err
	}

	log.Info("attendance recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("emp_code", empl.Code),
		zap.String("status", out.Event.Status),
	)
	return out, nil
}

func (e *Engine) queueRecorded(ctx context.Context, tx *sql.Tx, out Outcome) error {
	if e.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)

	payload := events.AttendanceRecordedEvent{
		EventType:  events.EventAttendanceRecorded,
		RequestID:  rid,
		EventID:    out.Event.ID.String(),
		EmployeeID: out.Employee.ID.String(),
		EmpCode:    out.Employee.Code,
		Status:     out.Event.Status,
		IsLate:     out.Event.IsLate,
		TotalHours: out.Event.TotalHours,
		Confidence: out.Event.Confidence,
		OccurredAt: out.Event.CreatedAt.UTC(),
	}

	// Keyed by employee so one employee's events stay on one partition.
	outboxEvent, err := kafka.NewOutboxEvent(rid, "attendance", out.Employee.ID.String(),
		events.EventAttendanceRecorded, events.AttendanceRecordedTopic, payload)
	if err != nil {
		return err
	}
	if err := e.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		contextutil.GetLogger(ctx, e.logger).Error("attendance outbox persist failed",
			zap.String("request_id", rid),
			zap.String("event_id", out.Event.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
