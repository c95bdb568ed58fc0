package wallet

import (
	"context"
	"fmt"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// OperatorAdapterConfig configures an OperatorAdapter.
type OperatorAdapterConfig struct {
	// AccountID is the operator account. Required.
	AccountID string

	// PrivateKey is the operator key in any format ParsePrivateKey
	// accepts. Required.
	PrivateKey string

	// Network the operator account lives on.
	Network string

	// Store receives the connection record on Connect. Optional.
	Store SessionStore
}

// OperatorAdapter signs transactions with a locally held operator key.
// It is the server-side counterpart of the interactive adapters: no
// provider, no relay, no user prompt. Holding the key makes it
// permanently available; Connect only records the operator identity.
type OperatorAdapter struct {
	accountID  string
	network    string
	privateKey hedera.PrivateKey
	publicKey  string
	store      SessionStore

	mu     sync.Mutex
	record *ConnectionRecord
}

// NewOperatorAdapter creates an adapter around an operator key.
func NewOperatorAdapter(config OperatorAdapterConfig) (*OperatorAdapter, error) {
	if err := shared.ValidateAccountID(config.AccountID); err != nil {
		return nil, err
	}
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	privateKey, err := shared.ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return nil, err
	}

	return &OperatorAdapter{
		accountID:  config.AccountID,
		network:    network,
		privateKey: privateKey,
		publicKey:  privateKey.PublicKey().String(),
		store:      config.Store,
	}, nil
}

// OperatorAdapterFromEnv builds the adapter from the operator
// environment variables.
func OperatorAdapterFromEnv() (*OperatorAdapter, error) {
	config, err := shared.OperatorConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewOperatorAdapter(OperatorAdapterConfig{
		AccountID:  config.AccountID,
		PrivateKey: config.PrivateKey,
		Network:    config.Network,
	})
}

// Name implements Adapter.
func (a *OperatorAdapter) Name() string {
	return "operator"
}

// IsAvailable implements Adapter.
func (a *OperatorAdapter) IsAvailable(ctx context.Context) bool {
	return ctx.Err() == nil
}

// Init implements Adapter.
func (a *OperatorAdapter) Init(ctx context.Context) error {
	return ctx.Err()
}

// Connect implements Adapter.
func (a *OperatorAdapter) Connect(ctx context.Context) (ConnectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return ConnectionRecord{}, err
	}

	record := ConnectionRecord{
		AccountID: a.accountID,
		Network:   a.network,
		PublicKey: a.publicKey,
	}

	a.mu.Lock()
	a.record = &record
	a.mu.Unlock()

	_ = saveRecord(a.store, record)
	return record, nil
}

// Disconnect implements Adapter. The key is retained; only the recorded
// identity is cleared.
func (a *OperatorAdapter) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	a.record = nil
	a.mu.Unlock()

	clearRecord(a.store)
	return nil
}

// RequestTransaction implements Adapter. The frozen transaction is
// decoded, signed with the operator key, and re-serialized. No network
// access is involved.
func (a *OperatorAdapter) RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(transactionBytes) == 0 {
		return nil, shared.NewValidationError("transactionBytes", "transaction bytes are required")
	}

	transaction, err := hedera.TransactionFromBytes(transactionBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction bytes: %w", err)
	}
	signed, err := hedera.TransactionSign(transaction, a.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	signedBytes, err := hedera.TransactionToBytes(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize signed transaction: %w", err)
	}
	return signedBytes, nil
}

// Accounts implements Adapter.
func (a *OperatorAdapter) Accounts(ctx context.Context) []string {
	if ctx.Err() != nil {
		return nil
	}
	return []string{a.accountID}
}

func (a *OperatorAdapter) adoptRecord(record ConnectionRecord) {
	a.mu.Lock()
	a.record = &record
	a.mu.Unlock()
}
