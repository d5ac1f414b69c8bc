package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeGone            = "GONE"
	CodeUnprocessable   = "UNPROCESSABLE_ENTITY"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	// Face verification rejections (401)
	CodeFaceMismatch    = "FACE_MISMATCH"
	CodeLowConfidence   = "LOW_CONFIDENCE"
	CodeDistanceTooHigh = "DISTANCE_TOO_HIGH"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeIntegrityViolation = "INTEGRITY_VIOLATION"
	CodeInvalidEmbedding   = "INVALID_EMBEDDING"
	CodeBadGateway         = "BAD_GATEWAY"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
