package payrollerrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrCancelled = apperror.New(
		apperror.CodeCancelled,
		"payroll calculation was cancelled",
		apperror.StatusClientClosedRequest,
	)
	ErrRosterUnavailable = apperror.New(
		apperror.CodeRetrievalFailure,
		"employee roster is unavailable",
		http.StatusServiceUnavailable,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to render payroll report",
		http.StatusInternalServerError,
	)
	ErrEnqueueFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to enqueue payroll report request",
		http.StatusInternalServerError,
	)
)
