package autherrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
)

var (
	ErrInvalidCredentials = apperror.New(
		CodeInvalidCredentials,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrPasswordNotSet = apperror.New(
		CodeInvalidCredentials,
		"Password not set. Please log in with your mobile number",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		CodeInvalidToken,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		CodeTokenExpired,
		"Token expired",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		CodeInvalidToken,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue token",
		http.StatusInternalServerError,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)

	ErrMissingIdentifier = apperror.New(
		apperror.CodeInvalidInput,
		"Either email or mobile number is required",
		http.StatusBadRequest,
	)

	ErrPasswordRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Password is required when using email",
		http.StatusBadRequest,
	)

	ErrMobileNotVerified = apperror.New(
		apperror.CodeInvalidInput,
		"Please verify OTP first",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email already registered",
		http.StatusConflict,
	)

	ErrMobileAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Mobile number already registered",
		http.StatusConflict,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
)
