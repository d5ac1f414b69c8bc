package breaktime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=break_repo.go -destination=mock/break_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, i *Interval) error
	// FindOpen returns nil, nil when the session has no open break.
	FindOpen(ctx context.Context, attendanceID uuid.UUID) (*Interval, error)
	Close(ctx context.Context, id uuid.UUID, end time.Time, minutes float64) error
	ListForEmployeeSince(ctx context.Context, employeeID uuid.UUID, since time.Time) ([]Interval, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, i *Interval) error {
	return r.conn(ctx).Create(i).Error
}

func (r *repository) FindOpen(ctx context.Context, attendanceID uuid.UUID) (*Interval, error) {
	var i Interval
	err := r.conn(ctx).
		Where("attendance_id = ?", attendanceID).
		Where("break_end IS NULL").
		Order("break_start DESC").
		Take(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) Close(ctx context.Context, id uuid.UUID, end time.Time, minutes float64) error {
	res := r.conn(ctx).
		Model(&Interval{}).
		Where("id = ?", id).
		Where("break_end IS NULL").
		Updates(map[string]any{
			"break_end":      end,
			"break_duration": minutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListForEmployeeSince(ctx context.Context, employeeID uuid.UUID, since time.Time) ([]Interval, error) {
	var rows []Interval
	err := r.conn(ctx).
		Joins("JOIN attendance ON attendance.id = break_times.attendance_id").
		Where("attendance.employee_id = ?", employeeID).
		Where("break_times.break_start >= ?", since).
		Order("break_times.break_start ASC").
		Find(&rows).Error
	return rows, err
}
