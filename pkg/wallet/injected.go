package wallet

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

const (
	defaultDetectTimeout = 10 * time.Second
	defaultPollInterval  = 250 * time.Millisecond
)

// InjectedConfig configures an InjectedAdapter.
type InjectedConfig struct {
	// ProviderName is the registry name to watch. Defaults to
	// ProviderHashPack.
	ProviderName string

	// Network is used when the provider does not report one.
	Network string

	// Store receives the connection record on successful connects.
	// Optional.
	Store SessionStore

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// DetectTimeout bounds how long Connect waits for the provider to
	// appear in the registry. Defaults to 10s.
	DetectTimeout time.Duration

	// PollInterval is the registry re-check cadence during detection.
	// Defaults to 250ms.
	PollInterval time.Duration
}

// InjectedAdapter connects through a wallet provider published in the
// package registry. Providers register late, so Connect polls for a
// bounded window before giving up.
type InjectedAdapter struct {
	providerName  string
	network       string
	store         SessionStore
	logger        *zap.Logger
	detectTimeout time.Duration
	pollInterval  time.Duration

	mu     sync.Mutex
	record *ConnectionRecord
}

// NewInjectedAdapter creates an adapter for the named injected provider.
func NewInjectedAdapter(config InjectedConfig) (*InjectedAdapter, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	providerName := normalizeProviderName(config.ProviderName)
	if providerName == "" {
		providerName = ProviderHashPack
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	detectTimeout := config.DetectTimeout
	if detectTimeout <= 0 {
		detectTimeout = defaultDetectTimeout
	}
	pollInterval := config.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &InjectedAdapter{
		providerName:  providerName,
		network:       network,
		store:         config.Store,
		logger:        logger,
		detectTimeout: detectTimeout,
		pollInterval:  pollInterval,
	}, nil
}

// Name implements Adapter.
func (a *InjectedAdapter) Name() string {
	return "injected"
}

// IsAvailable implements Adapter. It checks the registry once without
// waiting.
func (a *InjectedAdapter) IsAvailable(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	_, exists := LookupProvider(a.providerName)
	return exists
}

// Init implements Adapter. Injected providers need no preparation; the
// detection wait happens in Connect.
func (a *InjectedAdapter) Init(ctx context.Context) error {
	return ctx.Err()
}

// Connect implements Adapter. It waits for the provider to register,
// discovers its connect capability, and persists the resulting record.
func (a *InjectedAdapter) Connect(ctx context.Context) (ConnectionRecord, error) {
	provider, err := a.awaitProvider(ctx)
	if err != nil {
		return ConnectionRecord{}, err
	}

	connection, err := a.connectProvider(provider)
	if err != nil {
		return ConnectionRecord{}, fmt.Errorf("wallet connect failed: %w", err)
	}
	if len(connection.AccountIDs) == 0 {
		return ConnectionRecord{}, &NoAccountsError{Adapter: a.Name()}
	}

	network := connection.Network
	if network == "" {
		network = a.network
	}
	record := ConnectionRecord{
		AccountID: connection.AccountIDs[0],
		Network:   network,
		PublicKey: connection.PublicKey,
	}
	if err := record.Validate(); err != nil {
		return ConnectionRecord{}, err
	}

	a.mu.Lock()
	a.record = &record
	a.mu.Unlock()

	if err := saveRecord(a.store, record); err != nil {
		a.logger.Debug("failed to persist wallet connection", zap.Error(err))
	}

	return record, nil
}

// Disconnect implements Adapter. Provider teardown failures are logged
// and swallowed; local state is always cleared.
func (a *InjectedAdapter) Disconnect(ctx context.Context) error {
	if provider, exists := LookupProvider(a.providerName); exists {
		if disconnector, ok := provider.(Disconnector); ok {
			if err := disconnector.Disconnect(); err != nil {
				a.logger.Debug("provider disconnect failed", zap.Error(err))
			}
		}
	}

	a.mu.Lock()
	a.record = nil
	a.mu.Unlock()

	clearRecord(a.store)
	return nil
}

// RequestTransaction implements Adapter.
func (a *InjectedAdapter) RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(transactionBytes) == 0 {
		return nil, shared.NewValidationError("transactionBytes", "transaction bytes are required")
	}

	a.mu.Lock()
	connected := a.record != nil
	a.mu.Unlock()
	if !connected {
		return nil, &NotConnectedError{Op: "RequestTransaction"}
	}

	provider, exists := LookupProvider(a.providerName)
	if !exists {
		return nil, NewUnavailableError(a.Name(), fmt.Sprintf("provider %q is no longer registered", a.providerName))
	}
	signer, ok := provider.(TransactionSigner)
	if !ok {
		return nil, NewUnavailableError(a.Name(), fmt.Sprintf("provider %q does not support transaction signing", a.providerName))
	}

	signed, err := signer.RequestTransaction(transactionBytes)
	if err != nil {
		return nil, fmt.Errorf("wallet rejected transaction: %w", err)
	}
	return signed, nil
}

// Accounts implements Adapter.
func (a *InjectedAdapter) Accounts(ctx context.Context) []string {
	if ctx.Err() != nil {
		return nil
	}

	if provider, exists := LookupProvider(a.providerName); exists {
		if lister, ok := provider.(AccountLister); ok {
			if accounts := lister.AccountIDs(); len(accounts) > 0 {
				return append([]string(nil), accounts...)
			}
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.record != nil {
		return []string{a.record.AccountID}
	}
	return nil
}

func (a *InjectedAdapter) adoptRecord(record ConnectionRecord) {
	a.mu.Lock()
	a.record = &record
	a.mu.Unlock()
}

// awaitProvider polls the registry until the provider appears, the
// detection window closes, or ctx is cancelled.
func (a *InjectedAdapter) awaitProvider(ctx context.Context) (any, error) {
	deadline := time.Now().Add(a.detectTimeout)
	for {
		if provider, exists := LookupProvider(a.providerName); exists {
			return provider, nil
		}
		if !time.Now().Before(deadline) {
			return nil, NewUnavailableError(a.Name(),
				fmt.Sprintf("provider %q was not registered within %s", a.providerName, a.detectTimeout))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}
}

// connectProvider invokes the provider's connect capability. Known
// interfaces are probed newest-first; reflection is the last resort for
// provider versions this package does not know about.
func (a *InjectedAdapter) connectProvider(provider any) (ProviderConnection, error) {
	switch p := provider.(type) {
	case Connector:
		return p.Connect()
	case LocalWalletConnector:
		return p.ConnectToLocalWallet()
	case Pairer:
		return p.Pair()
	}
	return a.connectByReflection(provider)
}

var connectCandidates = []string{"Connect", "ConnectToLocalWallet", "Pair"}

var (
	connectionType    = reflect.TypeOf(ProviderConnection{})
	connectionPtrType = reflect.TypeOf(&ProviderConnection{})
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
)

func (a *InjectedAdapter) connectByReflection(provider any) (ProviderConnection, error) {
	value := reflect.ValueOf(provider)
	for _, name := range connectCandidates {
		method := value.MethodByName(name)
		if !method.IsValid() || !connectSignatureOK(method.Type()) {
			continue
		}

		a.logger.Warn("provider implements no known connect interface, calling by method name",
			zap.String("provider", a.providerName),
			zap.String("method", name))
		return callConnectMethod(method)
	}
	return ProviderConnection{}, NewUnavailableError(a.Name(),
		fmt.Sprintf("provider %q exposes no connect method", a.providerName))
}

func connectSignatureOK(method reflect.Type) bool {
	if method.NumIn() != 0 {
		return false
	}
	switch method.NumOut() {
	case 1:
		return method.Out(0) == connectionType || method.Out(0) == connectionPtrType
	case 2:
		return (method.Out(0) == connectionType || method.Out(0) == connectionPtrType) &&
			method.Out(1).Implements(errorType)
	default:
		return false
	}
}

func callConnectMethod(method reflect.Value) (ProviderConnection, error) {
	results := method.Call(nil)

	var connection ProviderConnection
	switch first := results[0].Interface().(type) {
	case ProviderConnection:
		connection = first
	case *ProviderConnection:
		if first != nil {
			connection = *first
		}
	}

	if len(results) == 2 {
		if err, ok := results[1].Interface().(error); ok && err != nil {
			return ProviderConnection{}, err
		}
	}
	return connection, nil
}
