package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	// FindAllByCode returns up to limit rows sharing code so callers can
	// detect broken uniqueness instead of silently picking one.
	FindAllByCode(ctx context.Context, code string, limit int) ([]Employee, error)
	FindAllByUserAndCode(ctx context.Context, userID uuid.UUID, code string, limit int) ([]Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, embedding datatypes.JSON) error
	Count(ctx context.Context) (int64, error)
	// LockByID takes a row lock on the employee for the rest of the bound
	// transaction. It must be called on a repository bound with WithTx.
	LockByID(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn routes statements through the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindAllByCode(ctx context.Context, code string, limit int) ([]Employee, error) {
	var rows []Employee
	err := r.conn(ctx).
		Where("emp_code = ?", code).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByUserAndCode(ctx context.Context, userID uuid.UUID, code string, limit int) ([]Employee, error) {
	var rows []Employee
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("emp_code = ?", code).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.conn(ctx).
		Select("id", "emp_code", "name", "user_id", "face_embedding IS NOT NULL AS has_face", "created_at", "updated_at").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("emp_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, embedding datatypes.JSON) error {
	updates := map[string]any{"face_embedding": embedding}
	if name != "" {
		updates["name"] = name
	}

	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

func (r *repository) LockByID(ctx context.Context, id uuid.UUID) error {
	if r.tx == nil {
		return errors.New("employee lock requires a transaction")
	}
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
