package breaktime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	breakerrors "github.com/RNiyam/attendance-system/internal/breaktime/errors"
	"github.com/RNiyam/attendance-system/internal/employee"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	StartBreak(ctx context.Context, userID string) (BreakResponse, error)
	EndBreak(ctx context.Context, userID string) (BreakResponse, error)
	Today(ctx context.Context, userID string) (TodayResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	ledger    attendance.Repository
	schedule  attendance.Schedule
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	ledger attendance.Repository,
	schedule attendance.Schedule,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("breaktime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("breaktime.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		ledger:    ledger,
		schedule:  schedule,
		now:       now,
		logger:    l,
	}
}

func (s *service) StartBreak(ctx context.Context, userID string) (BreakResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	var started Interval

	err := s.inSession(ctx, userID, func(tx *sql.Tx, session *attendance.Event) error {
		repo := s.repo.WithTx(tx)
		open, err := repo.FindOpen(ctx, session.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return breakerrors.ErrBreakAlreadyActive
		}

		started = Interval{
			ID:           uuid.New(),
			AttendanceID: session.ID,
			BreakStart:   s.now(),
		}
		return mapRepositoryError(repo.Create(ctx, &started))
	})
	if err != nil {
		s.logger.Warn("start break failed", zap.String("request_id", rid), zap.Error(err))
		return BreakResponse{}, err
	}

	s.logger.Info("break started",
		zap.String("request_id", rid),
		zap.String("break_id", started.ID.String()),
		zap.String("attendance_id", started.AttendanceID.String()),
	)
	return mapToResponse(started), nil
}

func (s *service) EndBreak(ctx context.Context, userID string) (BreakResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	var ended Interval

	err := s.inSession(ctx, userID, func(tx *sql.Tx, session *attendance.Event) error {
		repo := s.repo.WithTx(tx)
		open, err := repo.FindOpen(ctx, session.ID)
		if err != nil {
			return err
		}
		if open == nil {
			return breakerrors.ErrNoActiveBreak
		}

		end := s.now()
		minutes := end.Sub(open.BreakStart).Minutes()
		if minutes < 0 {
			minutes = 0
		}
		if err := repo.Close(ctx, open.ID, end, minutes); err != nil {
			return mapRepositoryError(err)
		}

		ended = *open
		ended.BreakEnd = &end
		ended.BreakDuration = &minutes
		return nil
	})
	if err != nil {
		s.logger.Warn("end break failed", zap.String("request_id", rid), zap.Error(err))
		return BreakResponse{}, err
	}

	s.logger.Info("break ended",
		zap.String("request_id", rid),
		zap.String("break_id", ended.ID.String()),
		zap.Float64("minutes", *ended.BreakDuration),
	)
	return mapToResponse(ended), nil
}

func (s *service) Today(ctx context.Context, userID string) (TodayResponse, error) {
	empl, err := s.employeeFor(ctx, userID)
	if err != nil {
		return TodayResponse{}, err
	}

	rows, err := s.repo.ListForEmployeeSince(ctx, empl.ID, s.schedule.StartOfDay(s.now()))
	if err != nil {
		return TodayResponse{}, err
	}
	return Summarize(rows), nil
}

// Summarize totals closed breaks and picks out the open one, if any.
func Summarize(rows []Interval) TodayResponse {
	resp := TodayResponse{Breaks: make([]BreakResponse, len(rows))}
	for i, row := range rows {
		resp.Breaks[i] = mapToResponse(row)
		if row.BreakDuration != nil {
			resp.TotalMinutes += *row.BreakDuration
		}
		if row.IsOpen() {
			active := resp.Breaks[i]
			resp.Active = &active
		}
	}
	return resp
}

// inSession runs fn in a transaction holding the employee row lock, with the
// caller's open attendance session for today.
func (s *service) inSession(ctx context.Context, userID string, fn func(tx *sql.Tx, session *attendance.Event) error) error {
	empl, err := s.employeeFor(ctx, userID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.employees.WithTx(tx).LockByID(ctx, empl.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	last, err := s.ledger.WithTx(tx).LastEvent(ctx, empl.ID)
	if err != nil {
		return err
	}
	if last == nil || !last.IsIn() || last.CreatedAt.Before(s.schedule.StartOfDay(s.now())) {
		return breakerrors.ErrNoActiveSession
	}

	if err := fn(tx, last); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) employeeFor(ctx context.Context, userID string) (*employee.Employee, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, breakerrors.ErrInvalidUserID
	}
	empl, err := s.employees.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}

func mapToResponse(i Interval) BreakResponse {
	resp := BreakResponse{
		ID:            i.ID.String(),
		AttendanceID:  i.AttendanceID.String(),
		BreakStart:    i.BreakStart.Format(time.RFC3339),
		BreakDuration: i.BreakDuration,
	}
	if i.BreakEnd != nil {
		v := i.BreakEnd.Format(time.RFC3339)
		resp.BreakEnd = &v
	}
	return resp
}
