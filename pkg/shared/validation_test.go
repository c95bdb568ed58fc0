package shared

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestIsValidAccountID(t *testing.T) {
	valid := []string{"0.0.1", "0.0.12345", "0.0.98765432", "  0.0.5  "}
	for _, value := range valid {
		if !IsValidAccountID(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}
}

func TestIsValidAccountIDInvalid(t *testing.T) {
	invalid := []string{
		"", "0.0", "0.0.", "1.0.5", "0.1.5", "0.0.abc",
		"0.0.5x", "x0.0.5", "0.0.5.6", "0-0-5",
	}
	for _, value := range invalid {
		if IsValidAccountID(value) {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}

func TestIsValidTransactionID(t *testing.T) {
	valid := []string{
		"0.0.12345@1718000000.123456789",
		"0.0.12345-1718000000.123456789",
	}
	for _, value := range valid {
		if !IsValidTransactionID(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}

	invalid := []string{"", "0.0.12345", "0.0.12345@", "12345@1.2"}
	for _, value := range invalid {
		if IsValidTransactionID(value) {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}

func TestValidateAccountIDError(t *testing.T) {
	err := ValidateAccountID("not-an-id")
	if err == nil {
		t.Fatal("expected error for invalid account ID")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Field != "accountId" {
		t.Fatalf("expected field 'accountId', got %q", validationErr.Field)
	}
	if ErrorCode(err) != CodeValidation {
		t.Fatalf("expected code %q, got %q", CodeValidation, ErrorCode(err))
	}
}

func TestValidateAmountPositive(t *testing.T) {
	if err := ValidateAmount(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAmount(0.0001); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAmount(MaxSafeAmount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAmountRejectsNonPositive(t *testing.T) {
	if err := ValidateAmount(0); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if err := ValidateAmount(-5); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestValidateAmountRejectsNonFinite(t *testing.T) {
	if err := ValidateAmount(math.NaN()); err == nil {
		t.Fatal("expected error for NaN")
	}
	if err := ValidateAmount(math.Inf(1)); err == nil {
		t.Fatal("expected error for +Inf")
	}
	if err := ValidateAmount(math.Inf(-1)); err == nil {
		t.Fatal("expected error for -Inf")
	}
}

func TestValidateAmountRejectsUnsafelyLarge(t *testing.T) {
	if err := ValidateAmount(MaxSafeAmount * 2); err == nil {
		t.Fatal("expected error for amount beyond the safe range")
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://gateway.example.com",
		"http://localhost:8080/v1",
		"  https://testnet.example.com/api  ",
	}
	for _, value := range valid {
		if err := ValidateURL(value); err != nil {
			t.Fatalf("unexpected error for %q: %v", value, err)
		}
	}
}

func TestValidateURLInvalid(t *testing.T) {
	invalid := []string{"", "   ", "ftp://example.com", "https://", "not a url"}
	for _, value := range invalid {
		if err := ValidateURL(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestValidationErrorMessageOmitsEmptyField(t *testing.T) {
	err := NewValidationError("", "something went wrong")
	if err.Error() != "something went wrong" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	withField := NewValidationError("amount", "must be positive")
	if !strings.HasPrefix(withField.Error(), "amount:") {
		t.Fatalf("expected field prefix, got %q", withField.Error())
	}
}

func TestErrorCodeUnknownError(t *testing.T) {
	if code := ErrorCode(errors.New("plain")); code != "" {
		t.Fatalf("expected empty code, got %q", code)
	}
	if code := ErrorCode(nil); code != "" {
		t.Fatalf("expected empty code for nil, got %q", code)
	}
}
