package employeeerrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailExists = apperror.New(
		apperror.CodeConflict,
		"email already registered in this company",
		http.StatusConflict,
	)
	ErrEmployeeCodeExists = apperror.New(
		apperror.CodeConflict,
		"employee code already in use",
		http.StatusConflict,
	)
	ErrInvalidEmployeeType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown employee type",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrImageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"image file is required",
		http.StatusBadRequest,
	)
)
