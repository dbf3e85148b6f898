package attendance

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	attendanceerrors "go-timekeep/internal/attendance/errors"
)

func mapAttendanceError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	if strings.Contains(err.Error(), "duplicate key value") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return err
}
