package shifterrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrShiftNotFound    = apperror.New("SHIFT_NOT_FOUND", "Shift not found", http.StatusNotFound)
	ErrShiftExists      = apperror.New("SHIFT_ALREADY_EXISTS", "Shift name already in use", http.StatusConflict)
	ErrInvalidShiftTime = apperror.New("INVALID_SHIFT_TIME", "Shift time must be HH:MM and start before end", http.StatusBadRequest)
	ErrShiftInUse       = apperror.New("SHIFT_IN_USE", "Shift still has active assignments", http.StatusConflict)
)
