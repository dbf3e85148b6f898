package faceerrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrNoFaceDetected = apperror.New(
		"NO_FACE_DETECTED",
		"no face detected in the submitted image",
		http.StatusUnprocessableEntity,
	)
	ErrFaceMismatch = apperror.New(
		apperror.CodeIdentityMismatch,
		"submitted face does not match the enrolled identity",
		http.StatusForbidden,
	)
	ErrNotEnrolled = apperror.New(
		"FACE_NOT_ENROLLED",
		"employee has no enrolled face descriptors",
		http.StatusUnprocessableEntity,
	)
	ErrVerificationFailed = apperror.New(
		"FACE_VERIFICATION_FAILED",
		"face verification service is unavailable",
		http.StatusBadGateway,
	)
)
