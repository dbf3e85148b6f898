package company

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	companyerrors "go-timekeep/internal/company/errors"
)

func MapCompanyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "subnet") {
			return companyerrors.ErrSubnetExists
		}
		return companyerrors.ErrCompanyExists
	}
	return err
}
