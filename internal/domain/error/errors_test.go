package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentErrorConstructors(t *testing.T) {
	t.Run("Generic error", func(t *testing.T) {
		cause := errors.New("database down")
		err := NewGenericError(cause)

		assert.Equal(t, CodeGenericError, err.Code)
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Provider unavailable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewProviderUnavailableError(cause)

		assert.Equal(t, CodeProviderUnavailable, err.Code)
		assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.True(t, IsProviderUnavailableError(err))
	})

	t.Run("Invalid provider response", func(t *testing.T) {
		err := NewInvalidResponseError(errors.New("missing url"))

		assert.Equal(t, CodeInvalidResponse, err.Code)
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
		assert.ErrorIs(t, err, ErrInvalidProviderResponse)
	})

	t.Run("Provider error preserves code and status", func(t *testing.T) {
		err := NewProviderError("1002", "Username is missing", http.StatusBadRequest)

		assert.Equal(t, "1002", err.Code)
		assert.Equal(t, "Username is missing", err.Message)
		assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	})

	t.Run("Invalid signature", func(t *testing.T) {
		err := NewInvalidSignatureError()

		assert.Equal(t, CodeInvalidSignature, err.Code)
		assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Not found", func(t *testing.T) {
		err := NewNotFoundError("ref-404")

		assert.Equal(t, CodeTransactionNotFound, err.Code)
		assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
		assert.Contains(t, err.Message, "ref-404")
		assert.True(t, IsNotFoundError(err))
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("CUSTOMER_ID_RULE", CodeMissingCustomerID, "Customer ID is missing")

	assert.Equal(t, CodeMissingCustomerID, err.Code)
	assert.Equal(t, "CUSTOMER_ID_RULE", err.Rule)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), CodeMissingCustomerID)

	fields := err.LogFields()
	assert.Equal(t, "validation_error", fields["error_type"])
	assert.Equal(t, "CUSTOMER_ID_RULE", fields["rule"])
}

func TestCode(t *testing.T) {
	t.Run("Typed payment error", func(t *testing.T) {
		assert.Equal(t, CodeProviderUnavailable, Code(NewProviderUnavailableError(errors.New("x"))))
	})

	t.Run("Typed validation error", func(t *testing.T) {
		err := NewValidationError("MOBILE_NUMBER_RULE", CodeMissingMobileNumber, "Mobile number is missing")
		assert.Equal(t, CodeMissingMobileNumber, Code(err))
	})

	t.Run("Wrapped sentinel", func(t *testing.T) {
		wrapped := fmt.Errorf("loading transaction: %w", ErrTransactionNotFound)
		assert.Equal(t, CodeTransactionNotFound, Code(wrapped))
	})

	t.Run("Untyped error falls back to generic", func(t *testing.T) {
		assert.Equal(t, CodeGenericError, Code(errors.New("anything")))
	})
}

func TestMessage(t *testing.T) {
	t.Run("Typed errors expose their message", func(t *testing.T) {
		err := NewProviderError("1001", "Unable to verify request signature", http.StatusUnauthorized)
		assert.Equal(t, "Unable to verify request signature", Message(err))
	})

	t.Run("Untyped errors never leak detail", func(t *testing.T) {
		internal := errors.New("pq: connection reset by peer")
		assert.NotContains(t, Message(internal), "pq:")
	})
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(NewProviderUnavailableError(errors.New("x"))))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("r", "30001", "m")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrap: %w", ErrTransactionNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything")))
}

func TestPaymentErrorLogFields(t *testing.T) {
	err := NewGenericError(errors.New("boom"))
	fields := err.LogFields()

	assert.Equal(t, "payment_error", fields["error_type"])
	assert.Equal(t, CodeGenericError, fields["error_code"])
	assert.Equal(t, http.StatusInternalServerError, fields["http_status"])
	assert.Equal(t, "boom", fields["error"])
}
