package employeeerrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrRosterUnavailable = apperror.New(
		apperror.CodeRetrievalFailure,
		"employee roster is unavailable",
		http.StatusServiceUnavailable,
	)
)
