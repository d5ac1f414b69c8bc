package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/breaktime"
	"github.com/RNiyam/attendance-system/internal/employee"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	RecentLimit    = 20
	totalsCacheTTL = 30 * time.Second
)

func AdminTotalsKey(day string) string {
	return "dashboard:admin:totals:" + day
}

// Roster lists employees for the admin view.
type Roster interface {
	GetAll(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type Service interface {
	Employee(ctx context.Context, userID string) (EmployeeDashboard, error)
	Admin(ctx context.Context) (AdminDashboard, error)
}

type Deps struct {
	Ledger     attendance.Repository
	Breaks     breaktime.Repository
	Employees  employee.Repository
	Roster     Roster
	Projection *Projection
	Redis      *redis.Client
	Schedule   attendance.Schedule
	Now        func() time.Time
}

type service struct {
	ledger     attendance.Repository
	breaks     breaktime.Repository
	employees  employee.Repository
	roster     Roster
	projection *Projection
	rdb        *redis.Client
	schedule   attendance.Schedule
	now        func() time.Time
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		ledger:     deps.Ledger,
		breaks:     deps.Breaks,
		employees:  deps.Employees,
		roster:     deps.Roster,
		projection: deps.Projection,
		rdb:        deps.Redis,
		schedule:   deps.Schedule,
		now:        now,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) Employee(ctx context.Context, userID string) (EmployeeDashboard, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return EmployeeDashboard{}, employeeerrors.ErrInvalidUserID
	}

	empl, err := s.employees.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDashboard{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeDashboard{}, err
	}

	now := s.now()
	var (
		rows   []attendance.Event
		breaks []breaktime.Interval
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.ledger.ListByEmployeeSince(gctx, empl.ID, KPIWindowStart(s.schedule, now))
		return err
	})
	g.Go(func() error {
		var err error
		breaks, err = s.breaks.ListForEmployeeSince(gctx, empl.ID, s.schedule.StartOfDay(now))
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("load employee dashboard failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeDashboard{}, err
	}

	resp := EmployeeDashboard{
		Employee:           employee.MapToResponse(*empl),
		Breaks:             breaktime.Summarize(breaks),
		AttendanceOverview: WeekOverview(rows, s.schedule, now),
		KPIs:               ComputeKPIs(rows, s.schedule, now),
	}
	if latest := latestToday(rows, s.schedule, now); latest != nil {
		ev := attendance.MapToResponse(*latest)
		ev.EmpCode = empl.Code
		ev.Name = empl.Name
		resp.TodayAttendance = &ev
		resp.CurrentTime = sessionHours(latest, now)
	}
	return resp, nil
}

func (s *service) Admin(ctx context.Context) (AdminDashboard, error) {
	var resp AdminDashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp.Stats, err = s.todayTotals(gctx)
		return err
	})
	g.Go(func() error {
		rows, err := s.ledger.List(gctx, attendance.ListFilter{}, RecentLimit)
		if err != nil {
			return err
		}
		resp.RecentAttendance = make([]attendance.EventResponse, len(rows))
		for i, r := range rows {
			resp.RecentAttendance[i] = attendance.MapToResponse(r)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		resp.Employees, err = s.roster.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("load admin dashboard failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return AdminDashboard{}, err
	}
	return resp, nil
}

func (s *service) todayTotals(ctx context.Context) (TodayTotals, error) {
	now := s.now()
	day := s.schedule.StartOfDay(now).Format("2006-01-02")
	key := AdminTotalsKey(day)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var totals TodayTotals
			if json.Unmarshal([]byte(cached), &totals) == nil {
				return totals, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		totals, err := s.computeTotals(ctx, day, s.schedule.StartOfDay(now))
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(totals); err == nil {
				if err := s.rdb.Set(ctx, key, data, totalsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache admin totals failed", zap.Error(err))
				}
			}
		}
		return totals, nil
	})
	if err != nil {
		return TodayTotals{}, err
	}
	return v.(TodayTotals), nil
}

func (s *service) computeTotals(ctx context.Context, day string, since time.Time) (TodayTotals, error) {
	staff, err := s.employees.Count(ctx)
	if err != nil {
		return TodayTotals{}, err
	}

	totals := TodayTotals{Day: day, TotalEmployees: staff}

	if s.projection != nil {
		counts, ok, err := s.projection.Read(ctx, day)
		if err != nil {
			s.logger.Warn("read kpi projection failed", zap.String("day", day), zap.Error(err))
		} else if ok {
			fill(&totals, counts, "projection")
			return totals, nil
		}
	}

	counts, err := s.ledger.CountSince(ctx, since)
	if err != nil {
		return TodayTotals{}, err
	}
	fill(&totals, counts, "ledger")
	return totals, nil
}

func fill(t *TodayTotals, c attendance.Counts, source string) {
	t.TotalRecords = c.Records
	t.CheckIns = c.CheckIns
	t.CheckOuts = c.CheckOuts
	t.Late = c.Late
	t.Source = source
}
