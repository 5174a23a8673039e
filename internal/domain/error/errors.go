package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Wire error codes returned in API error responses
const (
	CodeGenericError        = "20000"
	CodeProviderUnavailable = "20001"
	CodeInvalidResponse     = "20002"
	CodeMissingCustomerID   = "30001"
	CodeMissingMobileNumber = "30002"
	CodeInvalidCustomerID   = "30003"
	CodeInvalidSignature    = "30401"
	CodeTransactionNotFound = "30404"
)

// Base error types
var (
	// ErrTransactionNotFound is returned when no transaction exists for a reference
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrProviderUnavailable is returned when the provider cannot be reached
	// or answers with a gateway timeout / service unavailable status
	ErrProviderUnavailable = errors.New("unable to connect to deposit provider")

	// ErrInvalidProviderResponse is returned when the provider answered 2xx but the
	// response is structurally incomplete or unparseable
	ErrInvalidProviderResponse = errors.New("unable to process deposit provider response")

	// ErrInvalidStatusTransition is returned when a transaction status change
	// violates the lifecycle state machine
	ErrInvalidStatusTransition = errors.New("invalid transaction status transition")

	// ErrInvalidAmount is returned when the payment amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the payment amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidSignature is returned when an envelope signature does not verify
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// PaymentError is the typed error carried across layers. It holds the wire
// error code, a caller-safe message and the HTTP status the outermost
// boundary should answer with.
type PaymentError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

// Error implements the error interface for PaymentError
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment error %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("payment error %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PaymentError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "payment_error",
		"error_code":  e.Code,
		"message":     e.Message,
		"http_status": e.HTTPStatus,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewGenericError wraps an unexpected failure into the generic fallback code
func NewGenericError(err error) *PaymentError {
	return &PaymentError{
		Code:       CodeGenericError,
		Message:    "Unable to process your request, please try later",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewProviderUnavailableError classifies network failures and 503/504 answers
func NewProviderUnavailableError(err error) *PaymentError {
	return &PaymentError{
		Code:       CodeProviderUnavailable,
		Message:    "Unable to connect to deposit provider, please try later",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        errors.Join(ErrProviderUnavailable, err),
	}
}

// NewInvalidResponseError flags a 2xx provider answer that is structurally incomplete
func NewInvalidResponseError(err error) *PaymentError {
	return &PaymentError{
		Code:       CodeInvalidResponse,
		Message:    "Unable to process deposit provider response, please try later",
		HTTPStatus: http.StatusInternalServerError,
		Err:        errors.Join(ErrInvalidProviderResponse, err),
	}
}

// NewProviderError carries the provider's own error code and message,
// preserving the HTTP status the provider answered with
func NewProviderError(code, message string, httpStatus int) *PaymentError {
	return &PaymentError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NewInvalidSignatureError rejects an envelope whose signature does not verify
func NewInvalidSignatureError() *PaymentError {
	return &PaymentError{
		Code:       CodeInvalidSignature,
		Message:    "Signature verification failed",
		HTTPStatus: http.StatusUnauthorized,
		Err:        ErrInvalidSignature,
	}
}

// NewNotFoundError is returned for an unknown txnReference
func NewNotFoundError(txnReference string) *PaymentError {
	return &PaymentError{
		Code:       CodeTransactionNotFound,
		Message:    "No transaction found for reference " + txnReference,
		HTTPStatus: http.StatusNotFound,
		Err:        ErrTransactionNotFound,
	}
}

// ValidationError rejects a payment request before any side effect
type ValidationError struct {
	Code    string
	Message string
	Rule    string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed [%s]: %s", e.Code, e.Message)
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"error_code": e.Code,
		"message":    e.Message,
		"rule":       e.Rule,
	}
}

// NewValidationError creates a typed validation failure for a named rule
func NewValidationError(rule, code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message, Rule: rule}
}

// Code returns the wire error code for any error. Untyped errors map to the
// generic fallback so internal detail never leaks to the caller.
func Code(err error) string {
	var paymentErr *PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr.Code
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code
	}
	if errors.Is(err, ErrTransactionNotFound) {
		return CodeTransactionNotFound
	}
	if errors.Is(err, ErrProviderUnavailable) {
		return CodeProviderUnavailable
	}
	if errors.Is(err, ErrInvalidProviderResponse) {
		return CodeInvalidResponse
	}
	return CodeGenericError
}

// Message returns the caller-safe message for any error
func Message(err error) string {
	var paymentErr *PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr.Message
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return "Unable to process your request, please try later"
}

// HTTPStatus returns the HTTP status the API boundary should answer with
func HTTPStatus(err error) int {
	var paymentErr *PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr.HTTPStatus
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrTransactionNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// IsNotFoundError checks if the error is a transaction lookup miss
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound)
}

// IsProviderUnavailableError checks if the error is a provider connectivity failure
func IsProviderUnavailableError(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsValidationError checks if the error is a request validation failure
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
