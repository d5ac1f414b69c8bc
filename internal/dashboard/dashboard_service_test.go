package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/breaktime"
	"github.com/RNiyam/attendance-system/internal/dashboard"
	"github.com/RNiyam/attendance-system/internal/employee"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"

	attendanceMock "github.com/RNiyam/attendance-system/internal/attendance/mock"
	breakMock "github.com/RNiyam/attendance-system/internal/breaktime/mock"
	employeeMock "github.com/RNiyam/attendance-system/internal/employee/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRoster struct {
	rows []employee.EmployeeResponse
	err  error
}

func (f fakeRoster) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.rows, f.err
}

type serviceDeps struct {
	ledger    *attendanceMock.MockRepository
	breaks    *breakMock.MockRepository
	employees *employeeMock.MockRepository
	redis     redismock.ClientMock
	now       time.Time
	service   dashboard.Service
}

func setupServiceTest(t *testing.T, roster dashboard.Roster) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()

	d := &serviceDeps{
		ledger:    attendanceMock.NewMockRepository(ctrl),
		breaks:    breakMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		redis:     redisMock,
		now:       time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
	}
	d.service = dashboard.NewService(dashboard.Deps{
		Ledger:     d.ledger,
		Breaks:     d.breaks,
		Employees:  d.employees,
		Roster:     roster,
		Projection: dashboard.NewProjection(rdb, time.UTC),
		Redis:      rdb,
		Schedule:   attendance.Schedule{WorkStart: 9 * time.Hour, WorkEnd: 17 * time.Hour, ShiftHours: 8, Location: time.UTC},
		Now:        func() time.Time { return d.now },
	})
	return d
}

func TestService_Employee(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	empl := &employee.Employee{ID: uuid.New(), Code: "EMP001", Name: "Asha", UserID: &userID}

	t.Run("clocked in with an open break", func(t *testing.T) {
		d := setupServiceTest(t, fakeRoster{})
		late := true
		rows := []attendance.Event{
			{ID: uuid.New(), EmployeeID: empl.ID, Status: attendance.StatusIn, IsLate: &late, CreatedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)},
		}
		breaks := []breaktime.Interval{
			{ID: uuid.New(), AttendanceID: rows[0].ID, BreakStart: time.Date(2026, 3, 4, 10, 45, 0, 0, time.UTC)},
		}
		d.employees.EXPECT().FindByUserID(gomock.Any(), userID).Return(empl, nil)
		d.ledger.EXPECT().
			ListByEmployeeSince(gomock.Any(), empl.ID, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)).
			Return(rows, nil)
		d.breaks.EXPECT().
			ListForEmployeeSince(gomock.Any(), empl.ID, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)).
			Return(breaks, nil)

		got, err := d.service.Employee(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, "EMP001", got.Employee.EmpCode)
		require.NotNil(t, got.TodayAttendance)
		assert.Equal(t, "EMP001", got.TodayAttendance.EmpCode)
		require.NotNil(t, got.CurrentTime)
		assert.Equal(t, 1.5, *got.CurrentTime)
		require.NotNil(t, got.Breaks.Active)
		assert.Equal(t, 1, got.KPIs.TodayAttendance)
		assert.Equal(t, 1, got.KPIs.LateArrivals)
	})

	t.Run("no record today", func(t *testing.T) {
		d := setupServiceTest(t, fakeRoster{})
		d.employees.EXPECT().FindByUserID(gomock.Any(), userID).Return(empl, nil)
		d.ledger.EXPECT().ListByEmployeeSince(gomock.Any(), empl.ID, gomock.Any()).Return(nil, nil)
		d.breaks.EXPECT().ListForEmployeeSince(gomock.Any(), empl.ID, gomock.Any()).Return(nil, nil)

		got, err := d.service.Employee(ctx, userID.String())

		require.NoError(t, err)
		assert.Nil(t, got.TodayAttendance)
		assert.Nil(t, got.CurrentTime)
		assert.Equal(t, dashboard.KPIs{}, got.KPIs)
	})

	t.Run("not onboarded", func(t *testing.T) {
		d := setupServiceTest(t, fakeRoster{})
		d.employees.EXPECT().FindByUserID(gomock.Any(), userID).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Employee(ctx, userID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("ledger failure", func(t *testing.T) {
		d := setupServiceTest(t, fakeRoster{})
		d.employees.EXPECT().FindByUserID(gomock.Any(), userID).Return(empl, nil)
		d.ledger.EXPECT().ListByEmployeeSince(gomock.Any(), empl.ID, gomock.Any()).Return(nil, errors.New("db down"))
		d.breaks.EXPECT().ListForEmployeeSince(gomock.Any(), empl.ID, gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := d.service.Employee(ctx, userID.String())

		assert.EqualError(t, err, "db down")
	})
}

func TestService_Admin(t *testing.T) {
	ctx := context.Background()
	totalsKey := dashboard.AdminTotalsKey("2026-03-04")
	roster := fakeRoster{rows: []employee.EmployeeResponse{{ID: "e-1", EmpCode: "EMP001", Name: "Asha"}}}
	recent := []attendance.Event{{
		ID:        uuid.New(),
		Status:    attendance.StatusIn,
		CreatedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		Employee:  &attendance.EmployeeRef{EmpCode: "EMP001", Name: "Asha"},
	}}

	t.Run("cached totals", func(t *testing.T) {
		d := setupServiceTest(t, roster)
		cached, _ := json.Marshal(dashboard.TodayTotals{Day: "2026-03-04", TotalEmployees: 3, CheckIns: 2, Source: "projection"})
		d.redis.ExpectGet(totalsKey).SetVal(string(cached))
		d.ledger.EXPECT().List(gomock.Any(), attendance.ListFilter{}, dashboard.RecentLimit).Return(recent, nil)

		got, err := d.service.Admin(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Stats.TotalEmployees)
		require.Len(t, got.RecentAttendance, 1)
		assert.Equal(t, "EMP001", got.RecentAttendance[0].EmpCode)
		assert.Len(t, got.Employees, 1)
		assert.NoError(t, d.redis.ExpectationsWereMet())
	})

	t.Run("totals from the kpi projection", func(t *testing.T) {
		d := setupServiceTest(t, roster)
		want := dashboard.TodayTotals{Day: "2026-03-04", TotalEmployees: 12, TotalRecords: 7, CheckIns: 5, CheckOuts: 2, Late: 1, Source: "projection"}
		data, _ := json.Marshal(want)

		d.redis.ExpectGet(totalsKey).RedisNil()
		d.employees.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
		d.redis.ExpectHGetAll(dashboard.KPIKey("2026-03-04")).SetVal(map[string]string{"checkins": "5", "checkouts": "2", "late": "1"})
		d.redis.ExpectSet(totalsKey, data, 30*time.Second).SetVal("OK")
		d.ledger.EXPECT().List(gomock.Any(), attendance.ListFilter{}, dashboard.RecentLimit).Return(recent, nil)

		got, err := d.service.Admin(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got.Stats)
		assert.NoError(t, d.redis.ExpectationsWereMet())
	})

	t.Run("totals from the ledger", func(t *testing.T) {
		d := setupServiceTest(t, roster)
		want := dashboard.TodayTotals{Day: "2026-03-04", TotalEmployees: 12, TotalRecords: 3, CheckIns: 2, CheckOuts: 1, Late: 1, Source: "ledger"}
		data, _ := json.Marshal(want)

		d.redis.ExpectGet(totalsKey).RedisNil()
		d.employees.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
		d.redis.ExpectHGetAll(dashboard.KPIKey("2026-03-04")).SetVal(map[string]string{})
		d.ledger.EXPECT().
			CountSince(gomock.Any(), time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)).
			Return(attendance.Counts{Records: 3, CheckIns: 2, CheckOuts: 1, Late: 1}, nil)
		d.redis.ExpectSet(totalsKey, data, 30*time.Second).SetVal("OK")
		d.ledger.EXPECT().List(gomock.Any(), attendance.ListFilter{}, dashboard.RecentLimit).Return(recent, nil)

		got, err := d.service.Admin(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got.Stats)
	})

	t.Run("roster failure", func(t *testing.T) {
		d := setupServiceTest(t, fakeRoster{err: errors.New("db down")})
		cached, _ := json.Marshal(dashboard.TodayTotals{Day: "2026-03-04"})
		d.redis.ExpectGet(totalsKey).SetVal(string(cached))
		d.ledger.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := d.service.Admin(ctx)

		assert.EqualError(t, err, "db down")
	})
}
