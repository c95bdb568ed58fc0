package gateway

import (
	"errors"
	"fmt"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// GatewayError reports a non-2xx response from the gateway.
type GatewayError struct {
	Status     int
	StatusText string
	Op         string
	Body       string
}

func (e *GatewayError) Error() string {
	message := fmt.Sprintf("gateway request failed with status %d %s (%s)", e.Status, e.StatusText, e.Op)
	if e.Body != "" {
		message = fmt.Sprintf("%s: %s", message, e.Body)
	}
	return message
}

// ErrorCode implements shared.Coded.
func (e *GatewayError) ErrorCode() string {
	return shared.CodeGateway
}

// Retryable reports whether the status indicates a transient condition.
func (e *GatewayError) Retryable() bool {
	return e.Status == 429 || e.Status >= 500
}

// NetworkError reports a transport-level failure: connection refused, DNS
// failure, or a timeout. These are always considered transient.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrorCode implements shared.Coded.
func (e *NetworkError) ErrorCode() string {
	return shared.CodeNetwork
}

// RetryExhaustedError reports that every attempt allowed by the retry
// policy failed. Attempts counts the initial attempt plus retries.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("gateway request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// ErrorCode implements shared.Coded.
func (e *RetryExhaustedError) ErrorCode() string {
	return shared.CodeRetryExhausted
}

// IsRetryable reports whether err is worth another attempt: any transport
// failure, HTTP 429, or a 5xx response.
func IsRetryable(err error) bool {
	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		return true
	}

	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		return gatewayErr.Retryable()
	}

	return false
}
