package calendarerrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be between 1 and 9999",
		http.StatusBadRequest,
	)
	ErrCalendarUnavailable = apperror.New(
		apperror.CodeRetrievalFailure,
		"working-day calendar is unavailable",
		http.StatusServiceUnavailable,
	)
)
