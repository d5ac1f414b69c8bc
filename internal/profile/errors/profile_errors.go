package profileerrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)
	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username already taken",
		http.StatusConflict,
	)
	ErrMobileNotVerified = apperror.New(
		apperror.CodeInvalidInput,
		"Phone number must be verified with an OTP first",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"Date of birth must be a past date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidPreferences = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid preferences data",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
