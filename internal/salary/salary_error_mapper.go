package salary

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	salaryerrors "go-timekeep/internal/salary/errors"
)

func mapSalaryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return salaryerrors.ErrSalaryExists
	}
	if strings.Contains(err.Error(), "duplicate key value") {
		return salaryerrors.ErrSalaryExists
	}
	return err
}
