package usershift

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	usershifterrors "go-timekeep/internal/usershift/errors"
)

func MapAssignmentError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usershifterrors.ErrAssignmentExists
	}
	return err
}
