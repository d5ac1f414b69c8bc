package breaktime

import (
	"errors"

	breakerrors "github.com/RNiyam/attendance-system/internal/breaktime/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_break_open" {
		return breakerrors.ErrBreakAlreadyActive
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return breakerrors.ErrNoActiveBreak
	}
	return err
}
