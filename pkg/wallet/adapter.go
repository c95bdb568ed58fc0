package wallet

import "context"

// Adapter is the capability surface shared by every wallet connection
// variant: the injected-provider adapter, the pairing adapter, and the
// server-side operator adapter.
type Adapter interface {
	// Name identifies the adapter variant in logs and errors.
	Name() string

	// IsAvailable reports whether a connect attempt could plausibly
	// succeed right now. It has no side effects and never fails.
	IsAvailable(ctx context.Context) bool

	// Init prepares the adapter. Adapters with optional external
	// dependencies degrade to unavailable here instead of failing.
	Init(ctx context.Context) error

	// Connect establishes a session and returns its record.
	Connect(ctx context.Context) (ConnectionRecord, error)

	// Disconnect tears the session down. It is best-effort: provider
	// failures are swallowed and local state is always cleared.
	Disconnect(ctx context.Context) error

	// RequestTransaction forwards frozen transaction bytes to the wallet
	// for signing and returns the signed bytes.
	RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error)

	// Accounts returns the identities the wallet exposes. It is
	// best-effort and returns an empty slice on failure.
	Accounts(ctx context.Context) []string
}
