package attendance

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// ClampLimit bounds a history limit to [1, MaxListLimit]. Zero or negative
// values fall back to DefaultListLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

type ListFilter struct {
	EmpCode    string
	EmployeeID *uuid.UUID
	Since      *time.Time
}

// Counts aggregates ledger rows created at or after a point in time.
type Counts struct {
	Records   int64
	CheckIns  int64
	CheckOuts int64
	Late      int64
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, e *Event) error
	// LastEvent returns nil, nil when the employee has no events.
	LastEvent(ctx context.Context, employeeID uuid.UUID) (*Event, error)
	List(ctx context.Context, filter ListFilter, limit int) ([]Event, error)
	ListByEmployeeSince(ctx context.Context, employeeID uuid.UUID, since time.Time) ([]Event, error)
	CountSince(ctx context.Context, since time.Time) (Counts, error)
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

func (r *repository) Append(ctx context.Context, e *Event) error {
	return r.conn(ctx).Omit("Employee").Create(e).Error
}

func (r *repository) LastEvent(ctx context.Context, employeeID uuid.UUID) (*Event, error) {
	var e Event
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(1).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter, limit int) ([]Event, error) {
	q := r.conn(ctx).
		Model(&Event{}).
		Joins("Employee")

	if filter.EmpCode != "" {
		q = q.Where(`"Employee"."emp_code" = ?`, filter.EmpCode)
	}
	if filter.EmployeeID != nil {
		q = q.Where("attendance.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Since != nil {
		q = q.Where("attendance.created_at >= ?", *filter.Since)
	}

	var rows []Event
	err := q.
		Order("attendance.created_at DESC").
		Limit(ClampLimit(limit)).
		Find(&rows).Error
	return rows, err
}

// ListByEmployeeSince returns the newest MaxListLimit events since the
// given time, oldest first.
func (r *repository) ListByEmployeeSince(ctx context.Context, employeeID uuid.UUID, since time.Time) ([]Event, error) {
	var rows []Event
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(MaxListLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(rows)
	return rows, nil
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (Counts, error) {
	var out Counts
	err := r.conn(ctx).
		Model(&Event{}).
		Select(`COUNT(*) AS records,
			COUNT(*) FILTER (WHERE status = ?) AS check_ins,
			COUNT(*) FILTER (WHERE status = ?) AS check_outs,
			COUNT(*) FILTER (WHERE status = ? AND is_late) AS late`, StatusIn, StatusOut, StatusIn).
		Where("created_at >= ?", since).
		Scan(&out).Error
	if err != nil {
		return Counts{}, err
	}
	return out, nil
}
