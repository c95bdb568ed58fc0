package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/ratelimit"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// Config controls gateway client construction. Zero values select the
// defaults documented on each field.
type Config struct {
	// Network selects the ledger network; empty means testnet.
	Network string

	// BaseURL overrides the default per-network gateway endpoint.
	BaseURL string

	// APIKey is sent as a Bearer token when present. It never appears in
	// errors or logs.
	APIKey string

	// HTTPClient overrides the default client. Its own timeout wins over
	// Timeout when set.
	HTTPClient *http.Client

	// Timeout applies to the default HTTP client; zero means 30s.
	Timeout time.Duration

	// Headers are sent on every request. Names are normalized to lowercase.
	Headers map[string]string

	// Retry controls the backoff policy for transient failures.
	Retry RetryConfig

	// Limiter paces outbound requests when set.
	Limiter *ratelimit.Limiter

	// Debug enables request logging on the default logger.
	Debug bool

	// Logger overrides the default logger.
	Logger *zap.Logger
}

// Client is a REST gateway client with rate limiting and bounded retries.
type Client struct {
	network    string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	headers    map[string]string
	retry      RetryConfig
	limiter    *ratelimit.Limiter
	logger     *zap.Logger
}

// NewClient creates a gateway client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL(network)
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid gateway base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	logger := config.Logger
	if logger == nil {
		logger = shared.NewLogger(config.Debug)
	}

	return &Client{
		network:    network,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(config.APIKey),
		httpClient: httpClient,
		headers:    headers,
		retry:      config.Retry.withDefaults(),
		limiter:    config.Limiter,
		logger:     logger,
	}, nil
}

func defaultBaseURL(network string) string {
	if network == shared.NetworkMainnet {
		return "https://gateway.hashgraph.online/v1"
	}
	return "https://testnet.gateway.hashgraph.online/v1"
}

// Network returns the normalized network name.
func (c *Client) Network() string {
	return c.network
}

// BaseURL returns the resolved gateway endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections releases idle keep-alive connections held by the
// underlying HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// GetWithQuery issues a GET request with the encoded query string appended
// to path.
func (c *Client) GetWithQuery(ctx context.Context, path string, query url.Values, out any) error {
	if encoded := query.Encode(); encoded != "" {
		path = fmt.Sprintf("%s?%s", path, encoded)
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into
// out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into
// out.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Acquire(ctx); err != nil {
		return fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = encoded
	}

	requestURL := c.resolveURL(path)
	operation := fmt.Sprintf("%s %s", method, path)
	c.logRequest(method, path, body)

	respBody, err := c.execute(ctx, method, requestURL, operation, payload)
	if err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode gateway response for %s: %w", operation, err)
		}
	}

	return nil
}

// send performs a single HTTP exchange and classifies the outcome.
func (c *Client) send(ctx context.Context, method, requestURL, operation string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &NetworkError{Op: operation, Err: err}
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &NetworkError{Op: operation, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &GatewayError{
			Status:     response.StatusCode,
			StatusText: http.StatusText(response.StatusCode),
			Op:         operation,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, nil
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// logRequest logs the outbound call with the body redacted. Never log the
// raw body: it may carry credential fields.
func (c *Client) logRequest(method, path string, body any) {
	if c.logger == nil || !c.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
	}
	if body != nil {
		fields = append(fields, zap.Any("body", redactBody(body)))
	}
	c.logger.Debug("gateway request", fields...)
}

func redactBody(body any) any {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "[unencodable]"
	}
	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return "[unencodable]"
	}
	return shared.RedactSensitiveData(generic)
}
