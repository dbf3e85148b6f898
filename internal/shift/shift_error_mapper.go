package shift

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	shifterrors "go-timekeep/internal/shift/errors"
)

func MapShiftError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shifterrors.ErrShiftExists
		case "23503":
			return shifterrors.ErrShiftInUse
		}
	}
	return err
}
