package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// Payment reference decoding
	ErrMissingField = new(ErrCodeMissingField, "payment reference field missing")
	ErrInvalidUUID  = new(ErrCodeInvalidUUID, "payment reference order guid is not a uuid")

	// Gateway
	ErrUnauthorized    = new(ErrCodeUnauthorized, "gateway rejected the secret key")
	ErrGatewayRejected = new(ErrCodeGatewayRejected, "gateway rejected the request")

	ErrCustomerEmailMissing = new(ErrCodeCustomerEmailMissing, "customer email missing")
)

type errorMapping struct {
	err    *InternalError
	status int
}

// errorMappings resolve an error's status and code. First match wins; more specific marks
// come first.
var errorMappings = []errorMapping{
	{ErrCustomerEmailMissing, http.StatusUnprocessableEntity},
	{ErrMissingField, http.StatusBadRequest},
	{ErrInvalidUUID, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusBadGateway},
	{ErrGatewayRejected, http.StatusBadGateway},
	{ErrHTTPClient, http.StatusBadGateway},
	{ErrNotFound, http.StatusNotFound},
	{ErrAlreadyExists, http.StatusConflict},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrValidation, http.StatusBadRequest},
	{ErrInvalidOperation, http.StatusBadRequest},
	{ErrDatabase, http.StatusInternalServerError},
	{ErrSystem, http.StatusInternalServerError},
}

const (
	ErrCodeHTTPClient           = "http_client_error"
	ErrCodeSystemError          = "system_error"
	ErrCodeNotFound             = "not_found"
	ErrCodeAlreadyExists        = "already_exists"
	ErrCodeValidation           = "validation_error"
	ErrCodeInvalidOperation     = "invalid_operation"
	ErrCodePermissionDenied     = "permission_denied"
	ErrCodeDatabase             = "database_error"
	ErrCodeMissingField         = "missing_field"
	ErrCodeInvalidUUID          = "invalid_uuid"
	ErrCodeUnauthorized         = "gateway_unauthorized"
	ErrCodeGatewayRejected      = "gateway_rejected"
	ErrCodeCustomerEmailMissing = "customer_email_missing"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsCustomerEmailMissing reports whether checkout stopped for lack of a customer email
func IsCustomerEmailMissing(err error) bool {
	return errors.Is(err, ErrCustomerEmailMissing)
}

// IsDecode reports whether err came from decoding a payment reference
func IsDecode(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidUUID)
}

// IsGateway reports whether err is one of the gateway failures
func IsGateway(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrGatewayRejected) ||
		errors.Is(err, ErrHTTPClient)
}

// IsGatewayRejection reports whether the gateway answered but refused the request
func IsGatewayRejection(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrGatewayRejected)
}

// FlattenHints joins every hint attached to err
func FlattenHints(err error) string {
	return errors.FlattenHints(err)
}

func HTTPStatusFromErr(err error) int {
	if m, ok := lookupMapping(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the machine-readable code of the first matching mark
func CodeFromErr(err error) string {
	if m, ok := lookupMapping(err); ok {
		return m.err.Code
	}
	return ErrCodeSystemError
}

func lookupMapping(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m, true
		}
	}
	return errorMapping{}, false
}
