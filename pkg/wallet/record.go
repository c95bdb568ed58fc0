package wallet

import (
	"fmt"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// ConnectionRecord describes an active wallet session. A manager holds at
// most one record at a time; reconnecting replaces it wholesale.
type ConnectionRecord struct {
	AccountID string `json:"accountId"`
	Network   string `json:"network"`
	PublicKey string `json:"publicKey,omitempty"`
}

// Validate checks the record is structurally sound. Restored records that
// fail this check are discarded rather than adopted.
func (r ConnectionRecord) Validate() error {
	if !shared.IsValidAccountID(r.AccountID) {
		return shared.NewValidationError("accountId", fmt.Sprintf("%q is not a valid account ID", r.AccountID))
	}
	if _, err := shared.NormalizeNetwork(r.Network); err != nil {
		return shared.NewValidationError("network", err.Error())
	}
	return nil
}
