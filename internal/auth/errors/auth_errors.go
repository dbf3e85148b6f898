package autherrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to perform this action",
		http.StatusForbidden,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"account not found",
		http.StatusNotFound,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		"EMAIL_ALREADY_REGISTERED",
		"an account with this email already exists",
		http.StatusConflict,
	)
	ErrAccountDisabled = apperror.New(
		apperror.CodeForbidden,
		"account is disabled",
		http.StatusForbidden,
	)
)
