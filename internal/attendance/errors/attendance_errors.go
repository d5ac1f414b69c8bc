package attendanceerrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

// The three verification rejections share one user-facing meaning. Callers
// attach {confidence, distance, message} with WithDetails.
var (
	ErrFaceMismatch = apperror.New(
		apperror.CodeFaceMismatch,
		"Face verification failed. The face does not match the registered employee",
		http.StatusUnauthorized,
	)
	ErrLowConfidence = apperror.New(
		apperror.CodeLowConfidence,
		"Face verification failed. Confidence too low",
		http.StatusUnauthorized,
	)
	ErrDistanceTooHigh = apperror.New(
		apperror.CodeDistanceTooHigh,
		"Face verification failed. Face distance too high",
		http.StatusUnauthorized,
	)
)

var (
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"You are not currently clocked in",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)

// RejectionDetails is the diagnostic payload of a verification rejection.
type RejectionDetails struct {
	Confidence float64 `json:"confidence"`
	Distance   float64 `json:"distance"`
	Message    string  `json:"message"`
}
