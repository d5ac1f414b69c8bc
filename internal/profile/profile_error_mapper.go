package profile

import (
	"errors"

	profileerrors "github.com/RNiyam/attendance-system/internal/profile/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_profile_username" {
		return profileerrors.ErrUsernameTaken
	}
	return err
}
