package breakerrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

var (
	ErrNoActiveSession = apperror.New(
		apperror.CodeInvalidState,
		"You must clock in first before starting a break",
		http.StatusBadRequest,
	)
	ErrBreakAlreadyActive = apperror.New(
		apperror.CodeInvalidState,
		"You already have an active break",
		http.StatusBadRequest,
	)
	ErrNoActiveBreak = apperror.New(
		apperror.CodeInvalidState,
		"No active break found",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
