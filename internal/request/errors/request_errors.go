package requesterrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown request kind",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrRequestOverlap = apperror.New(
		apperror.CodeConflict,
		"a request of this kind already covers an overlapping period",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"request is no longer pending",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrTargetShiftRequired = apperror.New(
		apperror.CodeInvalidInput,
		"target_shift_id is required for SHIFT_CHANGE requests",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel a request",
		http.StatusForbidden,
	)
)
