package shared

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes shared across packages.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNetwork           = "NETWORK_ERROR"
	CodeGateway           = "GATEWAY_ERROR"
	CodeRetryExhausted    = "RETRY_EXHAUSTED"
	CodeWalletUnavailable = "WALLET_UNAVAILABLE"
	CodeNoAccounts        = "NO_ACCOUNTS"
	CodeNoSessionAccount  = "NO_SESSION_ACCOUNT"
	CodeNotConnected      = "NOT_CONNECTED"
	CodeConnectInProgress = "CONNECT_IN_PROGRESS"
	CodeNoAdapter         = "NO_ADAPTER"
)

// Coded is implemented by errors that carry a stable code.
type Coded interface {
	ErrorCode() string
}

// ErrorCode walks the error chain and returns the first stable code found,
// or an empty string.
func ErrorCode(err error) string {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// ValidationError reports input that failed a structural check before any
// network call was made.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorCode implements Coded.
func (e *ValidationError) ErrorCode() string {
	return CodeValidation
}
