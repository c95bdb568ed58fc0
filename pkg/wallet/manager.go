package wallet

import (
	"context"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// Status is the manager's connection state.
type Status string

const (
	StatusUnconfigured Status = "unconfigured"
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Adapter is the wallet variant to manage. When nil, one is derived
	// from the other fields: ProjectID set selects the pairing adapter,
	// otherwise Network set selects the injected adapter, otherwise the
	// manager starts unconfigured.
	Adapter Adapter

	// Network for derived adapters.
	Network string

	// ProjectID selects the pairing adapter when Adapter is nil.
	ProjectID string

	// Store persists the connection record across restarts. Shared with
	// derived adapters. Optional; without it nothing is persisted.
	Store SessionStore

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Manager owns the active wallet connection. It tracks at most one
// record, guards against overlapping connect attempts, and restores
// persisted sessions on Init.
type Manager struct {
	store  SessionStore
	logger *zap.Logger

	mu         sync.Mutex
	adapter    Adapter
	record     *ConnectionRecord
	connecting bool
}

// recordAdopter lets the manager hand a restored record to the adapter
// so both sides agree on the session identity.
type recordAdopter interface {
	adoptRecord(record ConnectionRecord)
}

// NewManager creates a wallet manager.
func NewManager(config ManagerConfig) (*Manager, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	adapter := config.Adapter
	if adapter == nil {
		switch {
		case strings.TrimSpace(config.ProjectID) != "":
			pairing, err := NewPairingAdapter(PairingConfig{
				ProjectID: config.ProjectID,
				Network:   config.Network,
				Store:     config.Store,
				Logger:    logger,
			})
			if err != nil {
				return nil, err
			}
			adapter = pairing
		case strings.TrimSpace(config.Network) != "":
			injected, err := NewInjectedAdapter(InjectedConfig{
				Network: config.Network,
				Store:   config.Store,
				Logger:  logger,
			})
			if err != nil {
				return nil, err
			}
			adapter = injected
		default:
			adapter = noAdapter{}
		}
	}

	return &Manager{
		store:   config.Store,
		logger:  logger,
		adapter: adapter,
	}, nil
}

// Status reports the current connection state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, unconfigured := m.adapter.(noAdapter); unconfigured {
		return StatusUnconfigured
	}
	if m.record != nil {
		return StatusConnected
	}
	return StatusDisconnected
}

// Adapter returns the active adapter.
func (m *Manager) Adapter() Adapter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adapter
}

// SetAdapter replaces the active adapter. Any current connection state
// is dropped; the persisted slot is left alone.
func (m *Manager) SetAdapter(adapter Adapter) {
	if adapter == nil {
		adapter = noAdapter{}
	}

	m.mu.Lock()
	m.adapter = adapter
	m.record = nil
	m.mu.Unlock()
}

// Record returns the active connection record, if any.
func (m *Manager) Record() (ConnectionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return ConnectionRecord{}, false
	}
	return *m.record, true
}

// Init prepares the adapter and restores a persisted session if one
// survives validation. Restore is best-effort.
func (m *Manager) Init(ctx context.Context) error {
	adapter := m.currentAdapter()
	if err := adapter.Init(ctx); err != nil {
		return err
	}

	if record, ok := loadRecord(m.store); ok {
		if adopter, ok := adapter.(recordAdopter); ok {
			adopter.adoptRecord(record)
		}
		m.mu.Lock()
		m.record = &record
		m.mu.Unlock()
		m.logger.Debug("restored wallet connection",
			zap.String("adapter", adapter.Name()),
			zap.String("accountId", record.AccountID))
	}
	return nil
}

// Connect establishes a session through the active adapter. A second
// call while one is in flight is rejected.
func (m *Manager) Connect(ctx context.Context) (ConnectionRecord, error) {
	return m.connectWith(ctx, m.currentAdapter())
}

// Disconnect tears the session down. Adapter failures are tolerated;
// local state and the persisted slot are always cleared.
func (m *Manager) Disconnect(ctx context.Context) error {
	adapter := m.currentAdapter()
	if err := adapter.Disconnect(ctx); err != nil {
		m.logger.Debug("adapter disconnect failed", zap.String("adapter", adapter.Name()), zap.Error(err))
	}

	m.mu.Lock()
	m.record = nil
	m.mu.Unlock()

	clearRecord(m.store)
	return nil
}

// RequestTransaction forwards frozen transaction bytes to the connected
// wallet.
func (m *Manager) RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error) {
	m.mu.Lock()
	adapter := m.adapter
	connected := m.record != nil
	m.mu.Unlock()

	if _, unconfigured := adapter.(noAdapter); unconfigured {
		return nil, &NoAdapterError{Op: "RequestTransaction"}
	}
	if !connected {
		return nil, &NotConnectedError{Op: "RequestTransaction"}
	}
	return adapter.RequestTransaction(ctx, transactionBytes)
}

// Accounts returns the wallet's accounts, falling back to the recorded
// session account.
func (m *Manager) Accounts(ctx context.Context) []string {
	m.mu.Lock()
	adapter := m.adapter
	record := m.record
	m.mu.Unlock()

	if accounts := adapter.Accounts(ctx); len(accounts) > 0 {
		return accounts
	}
	if record != nil {
		return []string{record.AccountID}
	}
	return nil
}

// IsHashPackAvailable reports whether a HashPack connect attempt could
// succeed: the injected registry is consulted first, then the active
// adapter's own availability.
func (m *Manager) IsHashPackAvailable(ctx context.Context) bool {
	if _, exists := LookupProvider(ProviderHashPack); exists {
		return true
	}
	return m.currentAdapter().IsAvailable(ctx)
}

// ConnectHashPack connects through the injected HashPack provider even
// when another adapter variant is active. The resulting record replaces
// the current one; the active adapter is left in place.
func (m *Manager) ConnectHashPack(ctx context.Context) (ConnectionRecord, error) {
	adapter := m.currentAdapter()
	if injected, ok := adapter.(*InjectedAdapter); ok && injected.providerName == ProviderHashPack {
		return m.connectWith(ctx, adapter)
	}

	injected, err := NewInjectedAdapter(InjectedConfig{
		Network: m.networkHint(),
		Store:   m.store,
		Logger:  m.logger,
	})
	if err != nil {
		return ConnectionRecord{}, err
	}
	return m.connectWith(ctx, injected)
}

// Close releases adapter resources. Connection state and the persisted
// slot are left as they are.
func (m *Manager) Close() error {
	adapter := m.currentAdapter()
	if closer, ok := adapter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (m *Manager) currentAdapter() Adapter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adapter
}

func (m *Manager) connectWith(ctx context.Context, adapter Adapter) (ConnectionRecord, error) {
	m.mu.Lock()
	if m.connecting {
		m.mu.Unlock()
		return ConnectionRecord{}, &ConnectInProgressError{}
	}
	m.connecting = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.connecting = false
		m.mu.Unlock()
	}()

	if _, unconfigured := adapter.(noAdapter); unconfigured {
		return ConnectionRecord{}, &NoAdapterError{Op: "Connect"}
	}
	if !adapter.IsAvailable(ctx) {
		return ConnectionRecord{}, NewUnavailableError(adapter.Name(), "not available in this environment")
	}

	record, err := adapter.Connect(ctx)
	if err != nil {
		return ConnectionRecord{}, err
	}

	m.mu.Lock()
	m.record = &record
	m.mu.Unlock()

	m.logger.Debug("wallet connected",
		zap.String("adapter", adapter.Name()),
		zap.String("accountId", record.AccountID))
	return record, nil
}

// networkHint picks the network for adapters created on the fly.
func (m *Manager) networkHint() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.record != nil {
		return m.record.Network
	}
	switch typed := m.adapter.(type) {
	case *InjectedAdapter:
		return typed.network
	case *PairingAdapter:
		return typed.network
	case *OperatorAdapter:
		return typed.network
	}
	return shared.NetworkTestnet
}

// noAdapter is the stand-in installed when no wallet variant is
// configured. Operations fail with a stable code instead of a nil
// dereference.
type noAdapter struct{}

func (noAdapter) Name() string { return "none" }

func (noAdapter) IsAvailable(ctx context.Context) bool { return false }

func (noAdapter) Init(ctx context.Context) error {
	return &NoAdapterError{Op: "Init"}
}

func (noAdapter) Connect(ctx context.Context) (ConnectionRecord, error) {
	return ConnectionRecord{}, &NoAdapterError{Op: "Connect"}
}

func (noAdapter) Disconnect(ctx context.Context) error { return nil }

func (noAdapter) RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error) {
	return nil, &NoAdapterError{Op: "RequestTransaction"}
}

func (noAdapter) Accounts(ctx context.Context) []string { return nil }
