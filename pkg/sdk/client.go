package sdk

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/consensus"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/gateway"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/ratelimit"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/token"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/wallet"
)

// Config controls SDK construction. Zero values select the defaults
// documented on each field.
type Config struct {
	// Network selects the ledger network; empty means testnet.
	Network string

	// BaseURL overrides the default per-network gateway endpoint.
	BaseURL string

	// APIKey authenticates gateway requests. It never appears in errors
	// or logs.
	APIKey string

	// ProjectID enables the pairing wallet adapter when no explicit
	// WalletAdapter is given.
	ProjectID string

	// Debug enables diagnostic logging on the default logger.
	Debug bool

	// Logger overrides the default logger.
	Logger *zap.Logger

	// HTTPClient overrides the gateway's default HTTP client.
	HTTPClient *http.Client

	// Retry controls the gateway backoff policy.
	Retry gateway.RetryConfig

	// RateLimit paces outbound gateway requests when set.
	RateLimit *ratelimit.Limiter

	// SessionStore persists the wallet connection across restarts.
	SessionStore wallet.SessionStore

	// WalletAdapter overrides the adapter the wallet manager derives from
	// ProjectID and Network.
	WalletAdapter wallet.Adapter
}

// Client bundles the gateway services behind one entry point: consensus
// logs, the token service, and the wallet manager share a single
// configured gateway client.
type Client struct {
	gateway   *gateway.Client
	consensus *consensus.Client
	tokens    *token.Client
	wallet    *wallet.Manager
}

// NewClient creates the SDK client.
func NewClient(config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = shared.NewLogger(config.Debug)
	}

	gatewayClient, err := gateway.NewClient(gateway.Config{
		Network:    config.Network,
		BaseURL:    config.BaseURL,
		APIKey:     config.APIKey,
		HTTPClient: config.HTTPClient,
		Retry:      config.Retry,
		Limiter:    config.RateLimit,
		Debug:      config.Debug,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	consensusClient, err := consensus.NewClient(gatewayClient)
	if err != nil {
		return nil, err
	}
	tokenClient, err := token.NewClient(gatewayClient)
	if err != nil {
		return nil, err
	}

	walletManager, err := wallet.NewManager(wallet.ManagerConfig{
		Adapter:   config.WalletAdapter,
		Network:   gatewayClient.Network(),
		ProjectID: config.ProjectID,
		Store:     config.SessionStore,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		gateway:   gatewayClient,
		consensus: consensusClient,
		tokens:    tokenClient,
		wallet:    walletManager,
	}, nil
}

// FromEnv creates the SDK client from the gateway environment variables.
func FromEnv() (*Client, error) {
	env := shared.GatewayConfigFromEnv()
	return NewClient(Config{
		Network:   env.Network,
		BaseURL:   env.BaseURL,
		APIKey:    env.APIKey,
		ProjectID: env.ProjectID,
		Debug:     env.Debug,
	})
}

// Gateway returns the underlying REST gateway client.
func (c *Client) Gateway() *gateway.Client {
	return c.gateway
}

// Consensus returns the consensus-log client.
func (c *Client) Consensus() *consensus.Client {
	return c.consensus
}

// Tokens returns the token-service client.
func (c *Client) Tokens() *token.Client {
	return c.tokens
}

// Wallet returns the wallet manager.
func (c *Client) Wallet() *wallet.Manager {
	return c.wallet
}

// WaitForOperation polls an operation until it completes, fails, or the
// polling budget runs out.
func (c *Client) WaitForOperation(ctx context.Context, operationID string, options gateway.WaitOptions) (gateway.Operation, error) {
	return c.gateway.WaitForOperation(ctx, operationID, options)
}

// Close releases the wallet adapter's resources and the gateway's idle
// connections. The persisted wallet session survives for the next run.
func (c *Client) Close() error {
	err := c.wallet.Close()
	c.gateway.CloseIdleConnections()
	return err
}
