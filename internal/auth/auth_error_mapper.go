package auth

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	autherrors "go-timekeep/internal/auth/errors"
)

func mapAuthError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(err.Error(), "duplicate key value") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}
