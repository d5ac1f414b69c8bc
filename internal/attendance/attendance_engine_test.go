package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	"github.com/RNiyam/attendance-system/internal/employee"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/events"
	"github.com/RNiyam/attendance-system/internal/face"
	faceerrors "github.com/RNiyam/attendance-system/internal/face/errors"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"

	attendanceMock "github.com/RNiyam/attendance-system/internal/attendance/mock"
	employeeMock "github.com/RNiyam/attendance-system/internal/employee/mock"
	faceMock "github.com/RNiyam/attendance-system/internal/face/mock"
	kafkaMock "github.com/RNiyam/attendance-system/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const testImage = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

var accepted = face.Result{Match: true, Confidence: 0.80, Distance: 0.20, Threshold: 0.6}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// memoryLedger backs the ledger mock with an in-memory slice.
type memoryLedger struct {
	events []attendance.Event
}

func (m *memoryLedger) last() *attendance.Event {
	if len(m.events) == 0 {
		return nil
	}
	e := m.events[len(m.events)-1]
	return &e
}

type engineDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	accessor  *employeeMock.MockAccessor
	employees *employeeMock.MockRepository
	ledger    *attendanceMock.MockRepository
	face      *faceMock.MockClient
	outbox    *kafkaMock.MockOutboxRepository
	clock     *fakeClock
	engine    *attendance.Engine
	enrolled  *employee.Enrolled
}

func setupEngineTest(t *testing.T) *engineDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d := &engineDeps{
		db:        db,
		sqlMock:   sqlMock,
		accessor:  employeeMock.NewMockAccessor(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		ledger:    attendanceMock.NewMockRepository(ctrl),
		face:      faceMock.NewMockClient(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		clock:     &fakeClock{t: time.Date(2026, 3, 2, 8, 50, 0, 0, time.UTC)},
		enrolled: &employee.Enrolled{
			ID:        uuid.New(),
			Code:      "EMP001",
			Name:      "Asha",
			Embedding: []float64{0.1, 0.2, 0.3},
		},
	}

	d.engine = attendance.NewEngine(db, d.accessor, d.employees, d.ledger, d.face, d.outbox, attendance.EngineOptions{
		Policy:   attendance.Policy{MinConfidence: 0.55, MaxDistance: 0.45},
		Schedule: attendance.Schedule{WorkStart: 9 * time.Hour, WorkEnd: 17 * time.Hour, ShiftHours: 8, Location: time.UTC},
		Now:      d.clock.Now,
	})
	return d
}

// expectAccepted wires a verification that passes every gate.
func (d *engineDeps) expectAccepted() {
	d.accessor.EXPECT().ByCode(gomock.Any(), "EMP001").Return(d.enrolled, nil)
	d.face.EXPECT().Verify(gomock.Any(), d.enrolled.Embedding, testImage).Return(accepted, nil)
}

// expectWrite wires the transactional part against an in-memory ledger.
func (d *engineDeps) expectWrite(mem *memoryLedger) {
	d.sqlMock.ExpectBegin()
	d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
	d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(nil)
	d.ledger.EXPECT().WithTx(gomock.Any()).Return(d.ledger)
	d.ledger.EXPECT().LastEvent(gomock.Any(), d.enrolled.ID).DoAndReturn(
		func(ctx context.Context, id uuid.UUID) (*attendance.Event, error) {
			return mem.last(), nil
		})
	d.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e *attendance.Event) error {
			mem.events = append(mem.events, *e)
			return nil
		})
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.sqlMock.ExpectCommit()
}

func TestEngine_AlternatesInAndOut(t *testing.T) {
	d := setupEngineTest(t)
	mem := &memoryLedger{}
	ctx := context.Background()

	want := []string{attendance.StatusIn, attendance.StatusOut, attendance.StatusIn, attendance.StatusOut, attendance.StatusIn}
	for i, status := range want {
		d.expectAccepted()
		d.expectWrite(mem)

		out, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

		require.NoError(t, err, "call %d", i)
		assert.Equal(t, status, out.Event.Status, "call %d", i)
		d.clock.Advance(3 * time.Hour)
	}

	require.Len(t, mem.events, len(want))
	for i := 1; i < len(mem.events); i++ {
		assert.NotEqual(t, mem.events[i-1].Status, mem.events[i].Status)
	}
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEngine_CheckInMetrics(t *testing.T) {
	d := setupEngineTest(t)
	mem := &memoryLedger{}
	d.expectAccepted()
	d.expectWrite(mem)

	out, err := d.engine.Record(context.Background(), attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

	require.NoError(t, err)
	require.NotNil(t, out.CheckIn)
	assert.False(t, out.CheckIn.IsLate)
	assert.Equal(t, "08:50:00", *out.Event.ClockInTime)
	assert.Equal(t, "09:00:00", *out.Event.ExpectedTime)
	assert.Equal(t, 0.80, out.Event.Confidence)
	assert.Nil(t, out.CheckOut)
	assert.Nil(t, out.Event.TotalHours)
}

func TestEngine_CheckOutTotalHours(t *testing.T) {
	d := setupEngineTest(t)
	in := attendance.Event{ID: uuid.New(), EmployeeID: d.enrolled.ID, Status: attendance.StatusIn, CreatedAt: d.clock.Now()}
	mem := &memoryLedger{events: []attendance.Event{in}}
	d.clock.Advance(7*time.Hour + 45*time.Minute)

	d.expectAccepted()
	d.expectWrite(mem)

	out, err := d.engine.Record(context.Background(), attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, out.Event.Status)
	assert.InDelta(t, 7.75, *out.Event.TotalHours, 1e-9)
	assert.Nil(t, out.Shift, "toggle mode never computes shift metrics")
}

func TestEngine_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		result  face.Result
		wantErr error
	}{
		{"mismatch", face.Result{Match: false, Confidence: 0.9, Distance: 0.1}, attendanceerrors.ErrFaceMismatch},
		{"low confidence", face.Result{Match: true, Confidence: 0.5, Distance: 0.1}, attendanceerrors.ErrLowConfidence},
		{"distance too high", face.Result{Match: true, Confidence: 0.8, Distance: 0.5}, attendanceerrors.ErrDistanceTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupEngineTest(t)
			d.accessor.EXPECT().ByCode(gomock.Any(), "EMP001").Return(d.enrolled, nil)
			d.face.EXPECT().Verify(gomock.Any(), d.enrolled.Embedding, testImage).Return(tt.result, nil)

			_, err := d.engine.Record(context.Background(), attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

			assert.ErrorIs(t, err, tt.wantErr)
			// No transaction was opened.
			assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestEngine_FailuresBeforeVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("untagged image never resolves the employee", func(t *testing.T) {
		d := setupEngineTest(t)

		_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: "aGVsbG8="})

		assert.ErrorIs(t, err, faceerrors.ErrInvalidImage)
	})

	for _, resolveErr := range []error{
		employeeerrors.ErrEmployeeNotFound,
		employeeerrors.ErrIntegrityViolation,
		employeeerrors.ErrInvalidEmbedding,
	} {
		t.Run(resolveErr.Error(), func(t *testing.T) {
			d := setupEngineTest(t)
			d.accessor.EXPECT().ByCode(gomock.Any(), "EMP001").Return(nil, resolveErr)

			_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

			assert.ErrorIs(t, err, resolveErr)
		})
	}

	t.Run("face service unavailable", func(t *testing.T) {
		d := setupEngineTest(t)
		d.accessor.EXPECT().ByCode(gomock.Any(), "EMP001").Return(d.enrolled, nil)
		d.face.EXPECT().Verify(gomock.Any(), gomock.Any(), testImage).Return(face.Result{}, faceerrors.ErrVerificationUnavailable)

		_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

		assert.ErrorIs(t, err, faceerrors.ErrVerificationUnavailable)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_ClockOutMode(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("requires an open session", func(t *testing.T) {
		d := setupEngineTest(t)
		d.accessor.EXPECT().ByUserAndCode(gomock.Any(), userID, "EMP001").Return(d.enrolled, nil)
		d.face.EXPECT().Verify(gomock.Any(), gomock.Any(), testImage).Return(accepted, nil)
		d.sqlMock.ExpectBegin()
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(nil)
		d.ledger.EXPECT().WithTx(gomock.Any()).Return(d.ledger)
		d.ledger.EXPECT().LastEvent(gomock.Any(), d.enrolled.ID).Return(
			&attendance.Event{Status: attendance.StatusOut, CreatedAt: d.clock.Now().Add(-time.Hour)}, nil)
		d.sqlMock.ExpectRollback()

		_, err := d.engine.Record(ctx, attendance.Request{
			Resolve: attendance.ByCaller(userID, "EMP001"),
			Image:   testImage,
			Mode:    attendance.ModeClockOut,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("computes shift metrics", func(t *testing.T) {
		d := setupEngineTest(t)
		d.clock.t = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
		in := attendance.Event{Status: attendance.StatusIn, CreatedAt: d.clock.Now()}
		mem := &memoryLedger{events: []attendance.Event{in}}
		d.clock.t = time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)

		d.accessor.EXPECT().ByUserAndCode(gomock.Any(), userID, "EMP001").Return(d.enrolled, nil)
		d.face.EXPECT().Verify(gomock.Any(), gomock.Any(), testImage).Return(accepted, nil)
		d.expectWrite(mem)

		out, err := d.engine.Record(ctx, attendance.Request{
			Resolve: attendance.ByCaller(userID, "EMP001"),
			Image:   testImage,
			Mode:    attendance.ModeClockOut,
		})

		require.NoError(t, err)
		require.NotNil(t, out.Shift)
		assert.InDelta(t, 30, out.Shift.LateArrival, 1e-9)
		assert.InDelta(t, 60, out.Shift.EarlyDeparture, 1e-9)
		assert.InDelta(t, 1.5, out.Shift.NegativeHours, 1e-9)
		assert.Zero(t, out.Shift.OvertimeHours)
		assert.InDelta(t, 6.5, out.CheckOut.TotalHours, 1e-9)
	})
}

func TestEngine_TransactionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("employee removed before lock", func(t *testing.T) {
		d := setupEngineTest(t)
		d.expectAccepted()
		d.sqlMock.ExpectBegin()
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(gorm.ErrRecordNotFound)
		d.sqlMock.ExpectRollback()

		_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("append failure rolls back", func(t *testing.T) {
		d := setupEngineTest(t)
		dbErr := errors.New("insert failed")
		d.expectAccepted()
		d.sqlMock.ExpectBegin()
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(nil)
		d.ledger.EXPECT().WithTx(gomock.Any()).Return(d.ledger)
		d.ledger.EXPECT().LastEvent(gomock.Any(), d.enrolled.ID).Return(nil, nil)
		d.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(dbErr)
		d.sqlMock.ExpectRollback()

		_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		d := setupEngineTest(t)
		d.expectAccepted()
		d.sqlMock.ExpectBegin()
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(nil)
		d.ledger.EXPECT().WithTx(gomock.Any()).Return(d.ledger)
		d.ledger.EXPECT().LastEvent(gomock.Any(), d.enrolled.ID).Return(nil, nil)
		d.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))
		d.sqlMock.ExpectRollback()

		_, err := d.engine.Record(ctx, attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

		assert.Error(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_QueuesRecordedEvent(t *testing.T) {
	d := setupEngineTest(t)
	d.clock.t = time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC)
	d.expectAccepted()
	d.sqlMock.ExpectBegin()
	d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
	d.employees.EXPECT().LockByID(gomock.Any(), d.enrolled.ID).Return(nil)
	d.ledger.EXPECT().WithTx(gomock.Any()).Return(d.ledger)
	d.ledger.EXPECT().LastEvent(gomock.Any(), d.enrolled.ID).Return(nil, nil)
	d.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.AttendanceRecordedTopic, e.Topic)
			assert.Equal(t, d.enrolled.ID.String(), e.AggregateID)

			var payload events.AttendanceRecordedEvent
			require.NoError(t, json.Unmarshal(e.Payload, &payload))
			assert.Equal(t, attendance.StatusIn, payload.Status)
			assert.Equal(t, "EMP001", payload.EmpCode)
			require.NotNil(t, payload.IsLate)
			assert.True(t, *payload.IsLate)
			assert.NotEmpty(t, payload.EventID)
			return nil
		})
	d.sqlMock.ExpectCommit()

	_, err := d.engine.Record(context.Background(), attendance.Request{Resolve: attendance.ByCode("EMP001"), Image: testImage})

	assert.NoError(t, err)
}
