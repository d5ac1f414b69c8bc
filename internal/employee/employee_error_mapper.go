package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if isNotFound(err) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employee_code":
			return employeeerrors.ErrEmployeeCodeExists
		case "uq_employee_user":
			return employeeerrors.ErrUserAlreadyLinked
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_employee_code"):
			return employeeerrors.ErrEmployeeCodeExists
		case strings.Contains(errMsg, "uq_employee_user"):
			return employeeerrors.ErrUserAlreadyLinked
		}
	}

	return err
}
