package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	"github.com/RNiyam/attendance-system/internal/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
	ClockOut(ctx context.Context, userID string, req ClockOutRequest) (ClockOutResponse, error)
	History(ctx context.Context, q HistoryQuery) ([]EventResponse, error)
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	engine    *Engine
	ledger    Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(engine *Engine, ledger Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{engine: engine, ledger: ledger, employees: employees, logger: l}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error) {
	out, err := s.engine.Record(ctx, Request{
		Resolve: ByCode(req.EmpCode),
		Image:   req.Image,
		Mode:    ModeToggle,
	})
	if err != nil {
		return CheckInResponse{}, err
	}

	resp := CheckInResponse{
		Success:    true,
		Message:    fmt.Sprintf("Attendance marked as %s", out.Event.Status),
		Status:     out.Event.Status,
		Confidence: out.Event.Confidence,
		Employee:   summarize(out.Employee),
	}
	if m := out.CheckIn; m != nil {
		isLate := m.IsLate
		resp.IsLate = &isLate
		resp.ClockInTime = m.ClockInTime
		resp.ExpectedTime = m.ExpectedTime
	}
	if m := out.CheckOut; m != nil {
		hours := m.TotalHours
		resp.ClockInTime = m.ClockInTime
		resp.ClockOutTime = m.ClockOutTime
		resp.TotalHours = &hours
	}
	return resp, nil
}

func (s *service) ClockOut(ctx context.Context, userID string, req ClockOutRequest) (ClockOutResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ClockOutResponse{}, attendanceerrors.ErrInvalidUserID
	}

	out, err := s.engine.Record(ctx, Request{
		Resolve: ByCaller(userID, req.EmpCode),
		Image:   req.Image,
		Mode:    ModeClockOut,
	})
	if err != nil {
		return ClockOutResponse{}, err
	}

	resp := ClockOutResponse{
		Success:    true,
		Message:    "Clock out successful",
		Status:     out.Event.Status,
		Confidence: out.Event.Confidence,
		Employee:   summarize(out.Employee),
	}
	if m := out.CheckOut; m != nil {
		resp.ClockInTime = m.ClockInTime
		resp.ClockOutTime = m.ClockOutTime
		resp.TotalHours = m.TotalHours
	}
	if m := out.Shift; m != nil {
		resp.LateArrival = m.LateArrival
		resp.EarlyDeparture = m.EarlyDeparture
		resp.OvertimeHours = m.OvertimeHours
		resp.NegativeHours = m.NegativeHours
	}
	return resp, nil
}

func (s *service) History(ctx context.Context, q HistoryQuery) ([]EventResponse, error) {
	rows, err := s.ledger.List(ctx, ListFilter{EmpCode: strings.TrimSpace(q.EmpCode)}, ClampLimit(q.Limit))
	if err != nil {
		s.logger.Error("attendance history failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	employees, err := s.employees.Count(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	counts, err := s.ledger.CountSince(ctx, time.Time{})
	if err != nil {
		return StatsResponse{}, err
	}
	return StatsResponse{
		TotalEmployees: employees,
		TotalRecords:   counts.Records,
		TotalCheckins:  counts.CheckIns,
		TotalCheckouts: counts.CheckOuts,
	}, nil
}

func summarize(e employee.Enrolled) EmployeeSummary {
	return EmployeeSummary{ID: e.ID.String(), EmpCode: e.Code, Name: e.Name}
}

func MapToResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:           e.ID.String(),
		EmployeeID:   e.EmployeeID.String(),
		Status:       e.Status,
		Confidence:   e.Confidence,
		ClockInTime:  e.ClockInTime,
		ClockOutTime: e.ClockOutTime,
		TotalHours:   e.TotalHours,
		IsLate:       e.IsLate,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.Employee != nil {
		resp.EmpCode = e.Employee.EmpCode
		resp.Name = e.Employee.Name
	}
	return resp
}

func mapToListResponse(rows []Event) []EventResponse {
	res := make([]EventResponse, len(rows))
	for i, r := range rows {
		res[i] = MapToResponse(r)
	}
	return res
}
