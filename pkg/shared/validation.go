package shared

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
)

// MaxSafeAmount is the largest amount that survives a round trip through a
// 64-bit float, 2^53 - 1.
const MaxSafeAmount = float64(1<<53 - 1)

var (
	entityIDPattern      = regexp.MustCompile(`^0\.0\.\d+$`)
	transactionIDPattern = regexp.MustCompile(`^0\.0\.\d+[@-]\d+\.\d+$`)
)

// IsValidAccountID reports whether value matches the 0.0.N account format.
func IsValidAccountID(value string) bool {
	return entityIDPattern.MatchString(strings.TrimSpace(value))
}

// IsValidTokenID reports whether value matches the 0.0.N token format.
func IsValidTokenID(value string) bool {
	return entityIDPattern.MatchString(strings.TrimSpace(value))
}

// IsValidTopicID reports whether value matches the 0.0.N topic format.
func IsValidTopicID(value string) bool {
	return entityIDPattern.MatchString(strings.TrimSpace(value))
}

// IsValidTransactionID accepts both payer@seconds.nanos and the
// payer-seconds.nanos form used in REST paths.
func IsValidTransactionID(value string) bool {
	return transactionIDPattern.MatchString(strings.TrimSpace(value))
}

// ValidateAccountID returns a ValidationError when value is not a 0.0.N
// account ID.
func ValidateAccountID(value string) error {
	if !IsValidAccountID(value) {
		return NewValidationError("accountId", fmt.Sprintf("%q is not a valid account ID", strings.TrimSpace(value)))
	}
	return nil
}

// ValidateTokenID returns a ValidationError when value is not a 0.0.N
// token ID.
func ValidateTokenID(value string) error {
	if !IsValidTokenID(value) {
		return NewValidationError("tokenId", fmt.Sprintf("%q is not a valid token ID", strings.TrimSpace(value)))
	}
	return nil
}

// ValidateTopicID returns a ValidationError when value is not a 0.0.N
// topic ID.
func ValidateTopicID(value string) error {
	if !IsValidTopicID(value) {
		return NewValidationError("topicId", fmt.Sprintf("%q is not a valid topic ID", strings.TrimSpace(value)))
	}
	return nil
}

// ValidateAmount rejects zero, negative, non-finite, and unsafely large
// amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NewValidationError("amount", "amount must be a finite number")
	}
	if amount <= 0 {
		return NewValidationError("amount", "amount must be greater than zero")
	}
	if amount > MaxSafeAmount {
		return NewValidationError("amount", "amount exceeds the maximum safe value")
	}
	return nil
}

// ValidateURL requires an absolute http or https URL with a host.
func ValidateURL(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return NewValidationError("url", "url cannot be empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return NewValidationError("url", "url is not parseable")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return NewValidationError("url", "url scheme must be http or https")
	}
	if parsed.Host == "" {
		return NewValidationError("url", "url host cannot be empty")
	}
	return nil
}
