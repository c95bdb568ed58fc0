package token

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/gateway"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

const (
	// MaxNFTMetadataBytes is the ledger limit on a single NFT's metadata.
	MaxNFTMetadataBytes = 100

	// MaxNFTBatchSize is the largest number of serials one mint can create.
	MaxNFTBatchSize = 10
)

// Client provides token service operations over the REST gateway.
type Client struct {
	gateway *gateway.Client
}

// NewClient creates a token client on top of an existing gateway client.
func NewClient(gatewayClient *gateway.Client) (*Client, error) {
	if gatewayClient == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gateway: gatewayClient}, nil
}

// CreateToken submits a token creation and returns the tracking operation.
func (c *Client) CreateToken(ctx context.Context, options CreateTokenOptions) (gateway.Operation, error) {
	var operation gateway.Operation
	if strings.TrimSpace(options.Name) == "" {
		return operation, shared.NewValidationError("name", "token name is required")
	}
	if strings.TrimSpace(options.Symbol) == "" {
		return operation, shared.NewValidationError("symbol", "token symbol is required")
	}
	if options.Decimals < 0 {
		return operation, shared.NewValidationError("decimals", "decimals cannot be negative")
	}
	if options.InitialSupply < 0 {
		return operation, shared.NewValidationError("initialSupply", "initial supply cannot be negative")
	}
	if options.TreasuryAccountID != "" {
		if err := shared.ValidateAccountID(options.TreasuryAccountID); err != nil {
			return operation, err
		}
	}

	if err := c.gateway.Post(ctx, "/tokens", options, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// MintToken mints additional fungible supply.
func (c *Client) MintToken(ctx context.Context, tokenID string, amount float64) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := shared.ValidateTokenID(tokenID); err != nil {
		return operation, err
	}
	if err := shared.ValidateAmount(amount); err != nil {
		return operation, err
	}

	body := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}

	path := fmt.Sprintf("/tokens/%s/mint", strings.TrimSpace(tokenID))
	if err := c.gateway.Post(ctx, path, body, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// MintNFT mints one serial per metadata entry. Metadata travels
// base64-encoded and typically holds a content reference, not the content
// itself.
func (c *Client) MintNFT(ctx context.Context, tokenID string, metadata [][]byte) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := shared.ValidateTokenID(tokenID); err != nil {
		return operation, err
	}
	if len(metadata) == 0 {
		return operation, shared.NewValidationError("metadata", "at least one metadata entry is required")
	}
	if len(metadata) > MaxNFTBatchSize {
		return operation, shared.NewValidationError(
			"metadata",
			fmt.Sprintf("mint batch exceeds %d serials (got %d)", MaxNFTBatchSize, len(metadata)),
		)
	}

	encoded := make([]string, 0, len(metadata))
	for index, entry := range metadata {
		if len(entry) == 0 {
			return operation, shared.NewValidationError(
				"metadata",
				fmt.Sprintf("metadata entry %d is empty", index),
			)
		}
		if len(entry) > MaxNFTMetadataBytes {
			return operation, shared.NewValidationError(
				"metadata",
				fmt.Sprintf("metadata entry %d exceeds %d bytes (got %d)", index, MaxNFTMetadataBytes, len(entry)),
			)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(entry))
	}

	body := struct {
		Metadata []string `json:"metadata"`
	}{Metadata: encoded}

	path := fmt.Sprintf("/tokens/%s/nfts", strings.TrimSpace(tokenID))
	if err := c.gateway.Post(ctx, path, body, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// TransferToken moves fungible units between two accounts.
func (c *Client) TransferToken(ctx context.Context, options TransferOptions) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := shared.ValidateTokenID(options.TokenID); err != nil {
		return operation, err
	}
	if !shared.IsValidAccountID(options.FromAccountID) {
		return operation, shared.NewValidationError("fromAccountId", fmt.Sprintf("%q is not a valid account ID", strings.TrimSpace(options.FromAccountID)))
	}
	if !shared.IsValidAccountID(options.ToAccountID) {
		return operation, shared.NewValidationError("toAccountId", fmt.Sprintf("%q is not a valid account ID", strings.TrimSpace(options.ToAccountID)))
	}
	if options.FromAccountID == options.ToAccountID {
		return operation, shared.NewValidationError("toAccountId", "sender and recipient cannot be the same account")
	}
	if err := shared.ValidateAmount(options.Amount); err != nil {
		return operation, err
	}

	path := fmt.Sprintf("/tokens/%s/transfer", strings.TrimSpace(options.TokenID))
	if err := c.gateway.Post(ctx, path, options, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// AssociateToken opts an account into holding a token.
func (c *Client) AssociateToken(ctx context.Context, accountID, tokenID string) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := shared.ValidateAccountID(accountID); err != nil {
		return operation, err
	}
	if err := shared.ValidateTokenID(tokenID); err != nil {
		return operation, err
	}

	body := struct {
		AccountID string `json:"accountId"`
	}{AccountID: strings.TrimSpace(accountID)}

	path := fmt.Sprintf("/tokens/%s/associate", strings.TrimSpace(tokenID))
	if err := c.gateway.Post(ctx, path, body, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// GetTokenInfo fetches token metadata.
func (c *Client) GetTokenInfo(ctx context.Context, tokenID string) (TokenInfo, error) {
	var info TokenInfo
	if err := shared.ValidateTokenID(tokenID); err != nil {
		return info, err
	}

	path := fmt.Sprintf("/tokens/%s", strings.TrimSpace(tokenID))
	if err := c.gateway.Get(ctx, path, &info); err != nil {
		return info, err
	}
	return info, nil
}

// GetBalances returns the token holdings of an account.
func (c *Client) GetBalances(ctx context.Context, accountID string) ([]TokenBalance, error) {
	if err := shared.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	var response balancesResponse
	path := fmt.Sprintf("/accounts/%s/balances", strings.TrimSpace(accountID))
	if err := c.gateway.Get(ctx, path, &response); err != nil {
		return nil, err
	}
	return response.Balances, nil
}
