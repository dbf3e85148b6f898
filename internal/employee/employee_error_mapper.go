package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "go-timekeep/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "idx_company_employee_code":
			return employeeerrors.ErrEmployeeCodeExists
		case "idx_company_employee_email":
			return employeeerrors.ErrEmailExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "idx_company_employee_code") {
			return employeeerrors.ErrEmployeeCodeExists
		}
		if strings.Contains(errMsg, "idx_company_employee_email") {
			return employeeerrors.ErrEmailExists
		}
	}

	return err
}
