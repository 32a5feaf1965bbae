package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"

	// Batch aborted by the caller (context cancelled or deadline exceeded).
	CodeCancelled = "CANCELLED"

	// Server errors (5xx)
	CodeInternalError    = "INTERNAL_ERROR"
	CodeRetrievalFailure = "RETRIEVAL_FAILURE"
)
