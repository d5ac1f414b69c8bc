package otperrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

var (
	ErrInvalidMobile = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid mobile number. Please provide a 10-digit mobile number",
		http.StatusBadRequest,
	)

	ErrInvalidCodeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid OTP format",
		http.StatusBadRequest,
	)

	ErrInvalidCode = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid OTP",
		http.StatusBadRequest,
	)

	ErrExpired = apperror.New(
		apperror.CodeGone,
		"OTP expired",
		http.StatusGone,
	)

	ErrTooManyRequests = apperror.New(
		apperror.CodeTooManyRequests,
		"Too many OTP requests. Try again later",
		http.StatusTooManyRequests,
	)

	ErrNotVerified = apperror.New(
		apperror.CodeInvalidInput,
		"Please verify OTP first",
		http.StatusBadRequest,
	)
)
