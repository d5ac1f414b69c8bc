package profile

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	profileerrors "github.com/RNiyam/attendance-system/internal/profile/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

func TestRepository_FindByUserID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	query := regexp.QuoteMeta(`SELECT * FROM "user_profiles" WHERE user_id = $1`)

	t.Run("no profile", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		got, err := NewRepository(gormDB).FindByUserID(ctx, userID)

		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing profile", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectQuery(query).WillReturnRows(
			sqlmock.NewRows([]string{"user_id", "username", "phone_number"}).
				AddRow(userID.String(), "asha", "9876543210"),
		)

		got, err := NewRepository(gormDB).FindByUserID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, "asha", *got.Username)
	})
}

func TestRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	insert := regexp.QuoteMeta(`INSERT INTO "user_profiles"`) + `.*` +
		regexp.QuoteMeta(`ON CONFLICT ("user_id") DO UPDATE SET "gender"="excluded"."gender","updated_at"="excluded"."updated_at"`)

	t.Run("only named columns are overwritten", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewRepository(gormDB).Upsert(ctx, &Profile{UserID: uuid.New(), Gender: "female", CreatedAt: now, UpdatedAt: now}, []string{"gender"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation surfaces", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_profile_username"})
		mock.ExpectRollback()

		err := NewRepository(gormDB).Upsert(ctx, &Profile{UserID: uuid.New(), Gender: "female"}, []string{"gender"})

		assert.ErrorIs(t, mapRepositoryError(err), profileerrors.ErrUsernameTaken)
	})
}

func TestMapRepositoryError(t *testing.T) {
	other := errors.New("boom")

	assert.Nil(t, mapRepositoryError(nil))
	assert.Equal(t, profileerrors.ErrUsernameTaken, mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_profile_username"}))
	assert.Equal(t, other, mapRepositoryError(other))

	pkey := &pgconn.PgError{Code: "23505", ConstraintName: "user_profiles_pkey"}
	assert.Equal(t, pkey, mapRepositoryError(pkey))
}
