package attendanceerrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrInvalidEventKind = apperror.New(
		apperror.CodeInvalidInput,
		"unrecognized attendance event kind",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidCutoff = apperror.New(
		apperror.CodeInvalidInput,
		"invalid cutoff time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrEventsUnavailable = apperror.New(
		apperror.CodeRetrievalFailure,
		"attendance events are unavailable",
		http.StatusServiceUnavailable,
	)
)
