package wallet

import (
	"strings"
	"sync"
)

// ProviderHashPack is the well-known registry name of the HashPack
// extension's injected provider.
const ProviderHashPack = "hashpack"

// ProviderConnection is what a provider's connect capability returns.
type ProviderConnection struct {
	AccountIDs []string
	Network    string
	PublicKey  string
}

// Connect capability variants. Provider versions differ in which method
// they expose, so the injected adapter probes these in order.
type (
	// Connector is the current connect capability.
	Connector interface {
		Connect() (ProviderConnection, error)
	}

	// LocalWalletConnector is the connect capability of older provider
	// versions.
	LocalWalletConnector interface {
		ConnectToLocalWallet() (ProviderConnection, error)
	}

	// Pairer is the connect capability of the earliest provider versions.
	Pairer interface {
		Pair() (ProviderConnection, error)
	}
)

// Disconnector is the optional provider teardown capability.
type Disconnector interface {
	Disconnect() error
}

// TransactionSigner is the provider signing capability.
type TransactionSigner interface {
	RequestTransaction(transactionBytes []byte) ([]byte, error)
}

// AccountLister is the optional provider account enumeration capability.
type AccountLister interface {
	AccountIDs() []string
}

// providerRegistry stands in for the browser's global object: host
// applications register their wallet bridge here, possibly after the SDK
// has already started looking for it.
var providerRegistry = struct {
	sync.RWMutex
	entries map[string]any
}{entries: map[string]any{}}

func normalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterProvider publishes a wallet provider under the given name,
// replacing any prior registration. Late registration is expected: the
// injected adapter polls for names that are not present yet.
func RegisterProvider(name string, provider any) {
	normalized := normalizeProviderName(name)
	if normalized == "" || provider == nil {
		return
	}

	providerRegistry.Lock()
	providerRegistry.entries[normalized] = provider
	providerRegistry.Unlock()
}

// LookupProvider returns the provider registered under name.
func LookupProvider(name string) (any, bool) {
	providerRegistry.RLock()
	provider, exists := providerRegistry.entries[normalizeProviderName(name)]
	providerRegistry.RUnlock()
	return provider, exists
}

// UnregisterProvider removes the provider registered under name.
func UnregisterProvider(name string) {
	providerRegistry.Lock()
	delete(providerRegistry.entries, normalizeProviderName(name))
	providerRegistry.Unlock()
}
