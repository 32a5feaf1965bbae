package middlewareerrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrMissingAuthContext = apperror.New(
		apperror.CodeUnauthorized,
		"missing auth context",
		http.StatusUnauthorized,
	)
	ErrTooManyRequests = apperror.New(
		apperror.CodeRateLimited,
		"too many requests",
		http.StatusTooManyRequests,
	)
	ErrRequestInProgress = apperror.New(
		apperror.CodeConflict,
		"a request with this idempotency key is still being processed",
		http.StatusConflict,
	)
)
