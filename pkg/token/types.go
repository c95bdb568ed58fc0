package token

// Token types reported by the gateway.
const (
	TypeFungible    = "FUNGIBLE_COMMON"
	TypeNonFungible = "NON_FUNGIBLE_UNIQUE"
)

// CreateTokenOptions configures a new token. Keys are public keys in the
// ledger's string encoding; leave them empty to omit the capability.
type CreateTokenOptions struct {
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Type              string  `json:"type,omitempty"`
	Decimals          int     `json:"decimals,omitempty"`
	InitialSupply     float64 `json:"initialSupply,omitempty"`
	TreasuryAccountID string  `json:"treasuryAccountId,omitempty"`
	AdminKey          string  `json:"adminKey,omitempty"`
	SupplyKey         string  `json:"supplyKey,omitempty"`
	Memo              string  `json:"memo,omitempty"`
}

// TransferOptions moves fungible token units between two accounts.
type TransferOptions struct {
	TokenID       string  `json:"tokenId"`
	FromAccountID string  `json:"fromAccountId"`
	ToAccountID   string  `json:"toAccountId"`
	Amount        float64 `json:"amount"`
	Memo          string  `json:"memo,omitempty"`
}

// TokenInfo describes a token known to the gateway.
type TokenInfo struct {
	TokenID           string  `json:"tokenId"`
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Type              string  `json:"type,omitempty"`
	Decimals          int     `json:"decimals"`
	TotalSupply       float64 `json:"totalSupply"`
	TreasuryAccountID string  `json:"treasuryAccountId,omitempty"`
	Memo              string  `json:"memo,omitempty"`
	Deleted           bool    `json:"deleted,omitempty"`
}

// TokenBalance is one entry of an account's token holdings.
type TokenBalance struct {
	TokenID  string  `json:"tokenId"`
	Balance  float64 `json:"balance"`
	Decimals int     `json:"decimals"`
}

type balancesResponse struct {
	AccountID string         `json:"accountId"`
	Balances  []TokenBalance `json:"balances"`
}
