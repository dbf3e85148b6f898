package salaryerrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrSalaryExists = apperror.New(
		"SALARY_PERIOD_EXISTS",
		"salary already generated for this period",
		http.StatusConflict,
	)
	ErrInvalidPeriod = apperror.New(
		"INVALID_SALARY_PERIOD",
		"month must be 1-12 and year must be reasonable",
		http.StatusBadRequest,
	)
	ErrNoAttendance = apperror.New(
		"NO_ATTENDANCE_DATA",
		"employee has no attendance records in the period",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatusTransition = apperror.New(
		"INVALID_SALARY_TRANSITION",
		"salary status cannot move that way",
		http.StatusUnprocessableEntity,
	)
	ErrSalaryNotApproved = apperror.New(
		"SALARY_NOT_APPROVED",
		"payslip can only be generated for an approved or paid salary",
		http.StatusUnprocessableEntity,
	)
)
