package employee

import (
	"context"
	"strings"

	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Accessor loads an employee together with a validated face embedding.
// It never writes.
//
//go:generate mockgen -source=employee_accessor.go -destination=mock/employee_accessor_mock.go -package=mock
type Accessor interface {
	ByCode(ctx context.Context, code string) (*Enrolled, error)
	// ByUserAndCode prefers the employee linked to userID and falls back to
	// a plain code lookup.
	ByUserAndCode(ctx context.Context, userID, code string) (*Enrolled, error)
}

type accessor struct {
	repo   Repository
	logger *zap.Logger
}

func NewAccessor(repo Repository, logger ...*zap.Logger) Accessor {
	l := zap.L().Named("employee.accessor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.accessor")
	}
	return &accessor{repo: repo, logger: l}
}

func (a *accessor) ByCode(ctx context.Context, code string) (*Enrolled, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, employeeerrors.ErrInvalidEmployeeCode
	}

	rows, err := a.repo.FindAllByCode(ctx, code, 2)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return a.single(ctx, code, rows)
}

func (a *accessor) ByUserAndCode(ctx context.Context, userID, code string) (*Enrolled, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, employeeerrors.ErrInvalidEmployeeCode
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return a.ByCode(ctx, code)
	}

	rows, err := a.repo.FindAllByUserAndCode(ctx, uid, code, 2)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(rows) == 0 {
		return a.ByCode(ctx, code)
	}
	return a.single(ctx, code, rows)
}

func (a *accessor) single(ctx context.Context, code string, rows []Employee) (*Enrolled, error) {
	log := contextutil.GetLogger(ctx, a.logger)

	switch len(rows) {
	case 0:
		return nil, employeeerrors.ErrEmployeeNotFound
	case 1:
	default:
		log.Error("employee code is not unique",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("emp_code", code),
			zap.Int("rows", len(rows)),
		)
		return nil, employeeerrors.ErrIntegrityViolation
	}

	e := rows[0]
	embedding, err := ParseEmbedding(e.FaceEmbedding)
	if err != nil {
		log.Warn("stored embedding rejected",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", e.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &Enrolled{
		ID:        e.ID,
		Code:      e.Code,
		Name:      e.Name,
		Embedding: embedding,
	}, nil
}
