package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hris-payroll/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

var errStoreDown = apperror.New(apperror.CodeRetrievalFailure, "store unavailable", http.StatusServiceUnavailable)

func TestAppError_WithCauseKeepsIdentity(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("load events: %w", errStoreDown.WithCause(cause))

	assert.ErrorIs(t, err, errStoreDown)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.HasCode(err, apperror.CodeRetrievalFailure))
	assert.False(t, apperror.HasCode(err, apperror.CodeCancelled))
	assert.Equal(t, apperror.CodeRetrievalFailure, apperror.CodeOf(err))
	assert.Nil(t, errStoreDown.Err)
}

func TestAppError_IsDistinguishesMessages(t *testing.T) {
	other := apperror.New(apperror.CodeRetrievalFailure, "roster unavailable", http.StatusServiceUnavailable)

	assert.False(t, errors.Is(other, errStoreDown))
}

func TestHasCode_NestedAppErrors(t *testing.T) {
	inner := apperror.New(apperror.CodeCancelled, "cancelled", apperror.StatusClientClosedRequest)
	outer := apperror.Wrap(inner, apperror.CodeInternalError, "batch failed", http.StatusInternalServerError)

	assert.True(t, apperror.HasCode(outer, apperror.CodeCancelled))
	assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(outer))
}

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		res := apperror.ToHTTP(errStoreDown.WithCause(errors.New("timeout")))

		assert.Equal(t, http.StatusServiceUnavailable, res.Status)
		assert.Equal(t, apperror.CodeRetrievalFailure, res.Code)
		assert.Equal(t, "store unavailable", res.Message)
		assert.Equal(t, "timeout", res.Details)
	})

	t.Run("plain error", func(t *testing.T) {
		res := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, apperror.CodeInternalError, res.Code)
	})
}

func TestMapValidationError_NonValidatorError(t *testing.T) {
	err := apperror.MapValidationError(errors.New("EOF"))

	assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
}
