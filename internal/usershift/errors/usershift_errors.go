package usershifterrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrNoScheduledShift   = apperror.New("NO_SCHEDULED_SHIFT", "No shift scheduled for this day", http.StatusUnprocessableEntity)
	ErrAssignmentExists   = apperror.New("ASSIGNMENT_ALREADY_EXISTS", "Employee already has a shift on this day", http.StatusConflict)
	ErrAssignmentNotFound = apperror.New("ASSIGNMENT_NOT_FOUND", "Shift assignment not found", http.StatusNotFound)
	ErrWeekendAssignment  = apperror.New("WEEKEND_ASSIGNMENT", "Official employees are not scheduled on weekends", http.StatusUnprocessableEntity)
)
