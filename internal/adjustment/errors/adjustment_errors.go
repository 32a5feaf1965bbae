package adjustmenterrors

import (
	"net/http"

	"hris-payroll/internal/shared/apperror"
)

var (
	ErrAdjustmentsUnavailable = apperror.New(
		apperror.CodeRetrievalFailure,
		"payroll adjustments are unavailable",
		http.StatusServiceUnavailable,
	)
)
