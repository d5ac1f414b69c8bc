package employeeerrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this code already exists",
		http.StatusConflict,
	)
	ErrUserAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"This account is already linked to another employee",
		http.StatusConflict,
	)
	ErrIntegrityViolation = apperror.New(
		apperror.CodeIntegrityViolation,
		"More than one employee shares this code. Contact an administrator",
		http.StatusInternalServerError,
	)
	ErrInvalidEmbedding = apperror.New(
		apperror.CodeInvalidEmbedding,
		"Stored face data is invalid. Please re-register the employee's face",
		http.StatusInternalServerError,
	)
	ErrInvalidEmployeeCode = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee code",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
