package faceerrors

import (
	"net/http"

	"github.com/RNiyam/attendance-system/internal/shared/apperror"
)

var (
	ErrInvalidImage = apperror.New(
		apperror.CodeInvalidInput,
		"Image must be a data URL tagged as an image (data:image/...)",
		http.StatusBadRequest,
	)
	ErrEmptyEmbedding = apperror.New(
		apperror.CodeInvalidEmbedding,
		"Stored face embedding is empty",
		http.StatusInternalServerError,
	)
	ErrVerificationUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Face recognition service is unavailable, please try again later",
		http.StatusServiceUnavailable,
	)
	ErrVerificationFailed = apperror.New(
		apperror.CodeBadGateway,
		"Face recognition service failed to process the image",
		http.StatusBadGateway,
	)
	ErrNoFaceDetected = apperror.New(
		apperror.CodeUnprocessable,
		"No face detected. Ensure exactly one face is clearly visible",
		http.StatusUnprocessableEntity,
	)
	ErrMultipleFaces = apperror.New(
		apperror.CodeUnprocessable,
		"Multiple faces detected. Ensure exactly one face is visible",
		http.StatusUnprocessableEntity,
	)
)
