package auth

import (
	"errors"
	"strings"

	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return autherrors.ErrEmailAlreadyRegistered
		case "uq_users_mobile":
			return autherrors.ErrMobileAlreadyRegistered
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") {
		if strings.Contains(msg, "uq_users_mobile") {
			return autherrors.ErrMobileAlreadyRegistered
		}
		if strings.Contains(msg, "uq_users_email") {
			return autherrors.ErrEmailAlreadyRegistered
		}
	}
	return err
}
