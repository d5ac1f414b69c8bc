package attendance

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestClampLimit(t *testing.T) {
	tests := map[int]int{
		-5:     DefaultListLimit,
		0:      DefaultListLimit,
		1:      1,
		50:     50,
		1000:   1000,
		1001:   MaxListLimit,
		100000: MaxListLimit,
	}
	for in, want := range tests {
		assert.Equal(t, want, ClampLimit(in), "limit %d", in)
	}
}

func TestRepository_LastEvent(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	query := regexp.QuoteMeta(`SELECT * FROM "attendance" WHERE employee_id = $1 ORDER BY created_at DESC`)

	t.Run("no events", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		got, err := NewRepository(gormDB).LastEvent(ctx, employeeID)

		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("latest event", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		id := uuid.New()
		created := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
		mock.ExpectQuery(query).WillReturnRows(
			sqlmock.NewRows([]string{"id", "employee_id", "status", "confidence", "created_at"}).
				AddRow(id.String(), employeeID.String(), StatusIn, 0.8, created),
		)

		got, err := NewRepository(gormDB).LastEvent(ctx, employeeID)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.True(t, got.IsIn())
		assert.Equal(t, created, got.CreatedAt)
	})
}

func TestRepository_CountSince(t *testing.T) {
	gormDB, mock := newGormMock(t)
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS records`).
		WithArgs(StatusIn, StatusOut, StatusIn, since).
		WillReturnRows(sqlmock.NewRows([]string{"records", "check_ins", "check_outs", "late"}).AddRow(10, 6, 4, 2))

	got, err := NewRepository(gormDB).CountSince(context.Background(), since)

	assert.NoError(t, err)
	assert.Equal(t, Counts{Records: 10, CheckIns: 6, CheckOuts: 4, Late: 2}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmployeeSince(t *testing.T) {
	gormDB, mock := newGormMock(t)
	employeeID := uuid.New()
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	older, newer := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendance" WHERE employee_id = $1 AND created_at >= $2 ORDER BY created_at DESC LIMIT $3`)).
		WithArgs(employeeID, since, MaxListLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "status", "created_at"}).
			AddRow(newer.String(), employeeID.String(), StatusOut, since.Add(10*time.Hour)).
			AddRow(older.String(), employeeID.String(), StatusIn, since.Add(time.Hour)))

	rows, err := NewRepository(gormDB).ListByEmployeeSince(context.Background(), employeeID, since)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, older, rows[0].ID)
	assert.Equal(t, newer, rows[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
