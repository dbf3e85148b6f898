package attendanceerrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrLocationRequired = apperror.New(
		"LOCATION_REQUIRED",
		"latitude and longitude are required",
		http.StatusBadRequest,
	)
	ErrImageRequired = apperror.New(
		"IMAGE_REQUIRED",
		"a check-in photo is required",
		http.StatusBadRequest,
	)
	ErrOutsideNetwork = apperror.New(
		"OUTSIDE_COMPANY_NETWORK",
		"request did not originate from a registered company network",
		http.StatusForbidden,
	)
	ErrOnApprovedLeave = apperror.New(
		"ON_APPROVED_LEAVE",
		"employee is on approved leave today",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyCheckedIn = apperror.New(
		"ALREADY_CHECKED_IN",
		"attendance already recorded for today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		"NOT_CHECKED_IN",
		"no open attendance record for today",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		"ALREADY_CHECKED_OUT",
		"attendance already closed for today",
		http.StatusConflict,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
