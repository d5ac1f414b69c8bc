package apperror

import "net/http"

// Shared sentinels for errors raised outside a feature package.
var (
	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrMissingToken = New(
		CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrMissingAuthContext = New(
		CodeUnauthorized,
		"Missing auth context",
		http.StatusUnauthorized,
	)

	ErrRequestInProgress = New(
		CodeConflict,
		"This request is already being processed, please wait",
		http.StatusConflict,
	)
)
