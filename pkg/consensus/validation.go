package consensus

import (
	"fmt"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

const (
	// MaxMessageBytes is the largest payload a single consensus message can
	// carry.
	MaxMessageBytes = 1024

	// MaxMemoBytes is the ledger limit on topic memos.
	MaxMemoBytes = 100
)

// ValidateMessagePayload rejects empty and oversized payloads.
func ValidateMessagePayload(payload []byte) error {
	if len(payload) == 0 {
		return shared.NewValidationError("message", "message payload cannot be empty")
	}
	if len(payload) > MaxMessageBytes {
		return shared.NewValidationError(
			"message",
			fmt.Sprintf("message payload exceeds %d bytes (got %d)", MaxMessageBytes, len(payload)),
		)
	}
	return nil
}

// ValidateMemo enforces the ledger memo size limit.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoBytes {
		return shared.NewValidationError(
			"memo",
			fmt.Sprintf("memo exceeds %d bytes (got %d)", MaxMemoBytes, len(memo)),
		)
	}
	return nil
}
