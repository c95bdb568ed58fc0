package wallet

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

const (
	defaultPairingConnectTimeout = 60 * time.Second
	defaultPairingRequestTimeout = 60 * time.Second
)

// pairingNamespace is the ledger namespace proposed to wallets. Chains
// are addressed as "hedera:<network>" and session accounts as
// "hedera:<network>:<accountId>".
const pairingNamespace = "hedera"

// methodSendTransaction is the JSON-RPC method a signing request uses.
const methodSendTransaction = "hedera_sendTransaction"

func pairingChain(network string) string {
	return pairingNamespace + ":" + network
}

func pairingMethods() []string {
	return []string{methodSendTransaction, "hedera_getAccounts", "hedera_signMessage"}
}

// PairingConfig configures a PairingAdapter.
type PairingConfig struct {
	// ProjectID identifies the application to the relay. Required.
	ProjectID string

	// Network the session is proposed for.
	Network string

	// AppName is shown by wallets in the approval prompt. Optional.
	AppName string

	// RelayURL overrides DefaultRelayURL. Optional.
	RelayURL string

	// Store receives the connection record on successful connects.
	// Optional.
	Store SessionStore

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// ConnectTimeout bounds how long Connect waits for wallet approval.
	// Defaults to 60s.
	ConnectTimeout time.Duration

	// RequestTimeout bounds how long RequestTransaction waits for the
	// wallet's answer. Defaults to 60s.
	RequestTimeout time.Duration
}

// pairingSession is the live state of an approved pairing.
type pairingSession struct {
	id       string
	secret   []byte
	accounts []string
	record   ConnectionRecord
}

// PairingAdapter connects to a remote wallet over a socket.io relay.
// Session proposals and signing requests are exchanged as encrypted
// envelopes; only routing identifiers travel in cleartext.
type PairingAdapter struct {
	projectID      string
	network        string
	appName        string
	relayURL       string
	store          SessionStore
	logger         *zap.Logger
	connectTimeout time.Duration
	requestTimeout time.Duration

	dial relayDialer

	approvals chan map[string]any

	mu          sync.Mutex
	initialized bool
	initErr     error
	conn        relayConn
	keys        sessionKeyPair
	session     *pairingSession
	record      *ConnectionRecord
	pending     map[string]chan map[string]any
}

// NewPairingAdapter creates a relay-backed wallet adapter. The relay is
// not dialed until Init or the first Connect.
func NewPairingAdapter(config PairingConfig) (*PairingAdapter, error) {
	if strings.TrimSpace(config.ProjectID) == "" {
		return nil, shared.NewValidationError("projectId", "projectId is required")
	}
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	relayURL := strings.TrimSpace(config.RelayURL)
	if relayURL == "" {
		relayURL = DefaultRelayURL
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	connectTimeout := config.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultPairingConnectTimeout
	}
	requestTimeout := config.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultPairingRequestTimeout
	}

	return &PairingAdapter{
		projectID:      strings.TrimSpace(config.ProjectID),
		network:        network,
		appName:        strings.TrimSpace(config.AppName),
		relayURL:       relayURL,
		store:          config.Store,
		logger:         logger,
		connectTimeout: connectTimeout,
		requestTimeout: requestTimeout,
		dial:           dialRelay,
		approvals:      make(chan map[string]any, 4),
		pending:        map[string]chan map[string]any{},
	}, nil
}

// Name implements Adapter.
func (a *PairingAdapter) Name() string {
	return "pairing"
}

// IsAvailable implements Adapter. Before the first Init the adapter is
// presumed reachable; after a failed Init it reports false until Close
// resets it.
func (a *PairingAdapter) IsAvailable(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return true
	}
	return a.conn != nil
}

// Init implements Adapter. Relay or key failures degrade the adapter to
// unavailable instead of returning an error.
func (a *PairingAdapter) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.ensureInit()
	return nil
}

func (a *PairingAdapter) ensureInit() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return
	}
	a.initialized = true

	conn, err := a.dial(a.relayURL, a.projectID)
	if err != nil {
		a.initErr = fmt.Errorf("relay dial failed: %w", err)
		a.logger.Debug("pairing relay unavailable", zap.String("relayUrl", a.relayURL), zap.Error(err))
		return
	}
	keys, err := newSessionKeyPair()
	if err != nil {
		a.initErr = fmt.Errorf("session key generation failed: %w", err)
		return
	}

	a.conn = conn
	a.keys = keys
	a.registerHandlers(conn)
}

func (a *PairingAdapter) registerHandlers(conn relayConn) {
	_ = conn.On("error", func(message any) {
		a.logger.Debug("pairing relay error", zap.Any("message", message))
	})
	_ = conn.On(eventSessionApprove, func(payload map[string]any) {
		select {
		case a.approvals <- payload:
		default:
		}
	})
	_ = conn.On(eventSessionResponse, func(payload map[string]any) {
		a.routeResponse(payload)
	})
	_ = conn.On(eventSessionDelete, func(payload map[string]any) {
		a.handleRemoteDelete(payload)
	})
}

func (a *PairingAdapter) routeResponse(payload map[string]any) {
	requestID := stringField(payload, "requestId")
	if requestID == "" {
		return
	}

	a.mu.Lock()
	waiter := a.pending[requestID]
	a.mu.Unlock()
	if waiter == nil {
		return
	}

	select {
	case waiter <- payload:
	default:
	}
}

func (a *PairingAdapter) handleRemoteDelete(payload map[string]any) {
	sessionID := stringField(payload, "sessionId")

	a.mu.Lock()
	ended := a.session != nil && (sessionID == "" || sessionID == a.session.id)
	if ended {
		a.session = nil
		a.record = nil
	}
	a.mu.Unlock()

	if ended {
		clearRecord(a.store)
		a.logger.Debug("wallet ended pairing session", zap.String("sessionId", sessionID))
	}
}

// Connect implements Adapter. It proposes a session over the relay and
// waits for a wallet to approve it.
func (a *PairingAdapter) Connect(ctx context.Context) (ConnectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return ConnectionRecord{}, err
	}
	a.ensureInit()

	a.mu.Lock()
	conn := a.conn
	keys := a.keys
	initErr := a.initErr
	a.mu.Unlock()
	if conn == nil {
		reason := "relay connection is not established"
		if initErr != nil {
			reason = initErr.Error()
		}
		return ConnectionRecord{}, NewUnavailableError(a.Name(), reason)
	}

	sessionID, err := randomIdentifier()
	if err != nil {
		return ConnectionRecord{}, err
	}

	proposal := map[string]any{
		"sessionId": sessionID,
		"projectId": a.projectID,
		"publicKey": keys.publicKey,
		"namespace": pairingNamespace,
		"chains":    []string{pairingChain(a.network)},
		"methods":   pairingMethods(),
	}
	if a.appName != "" {
		proposal["appName"] = a.appName
	}
	if err := conn.Emit(eventSessionPropose, proposal); err != nil {
		return ConnectionRecord{}, fmt.Errorf("failed to propose pairing session: %w", err)
	}

	timer := time.NewTimer(a.connectTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ConnectionRecord{}, ctx.Err()
		case <-timer.C:
			return ConnectionRecord{}, NewUnavailableError(a.Name(),
				fmt.Sprintf("no wallet approved the session within %s", a.connectTimeout))
		case payload := <-a.approvals:
			if stringField(payload, "sessionId") != sessionID {
				continue
			}
			return a.adoptApproval(keys, sessionID, payload)
		}
	}
}

func (a *PairingAdapter) adoptApproval(keys sessionKeyPair, sessionID string, payload map[string]any) (ConnectionRecord, error) {
	secret, err := deriveSessionSecret(keys, stringField(payload, "publicKey"))
	if err != nil {
		return ConnectionRecord{}, fmt.Errorf("pairing approval rejected: %w", err)
	}

	accounts := stringSlice(payload["accounts"])
	if len(accounts) == 0 {
		return ConnectionRecord{}, &NoAccountsError{Adapter: a.Name()}
	}
	accountID, ok := parseSessionAccount(accounts[0], a.network)
	if !ok {
		return ConnectionRecord{}, &NoSessionAccountError{Chain: pairingChain(a.network), Accounts: accounts}
	}

	record := ConnectionRecord{
		AccountID: accountID,
		Network:   a.network,
		PublicKey: stringField(payload, "accountPublicKey"),
	}
	if err := record.Validate(); err != nil {
		return ConnectionRecord{}, err
	}

	a.mu.Lock()
	a.session = &pairingSession{id: sessionID, secret: secret, accounts: accounts, record: record}
	a.record = &record
	a.mu.Unlock()

	if err := saveRecord(a.store, record); err != nil {
		a.logger.Debug("failed to persist wallet connection", zap.Error(err))
	}
	return record, nil
}

// Disconnect implements Adapter. The session delete announcement is
// best-effort; local state is always cleared. The relay connection is
// kept for reconnects.
func (a *PairingAdapter) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	session := a.session
	conn := a.conn
	a.session = nil
	a.record = nil
	a.mu.Unlock()

	if session != nil && conn != nil {
		if err := conn.Emit(eventSessionDelete, map[string]any{"sessionId": session.id}); err != nil {
			a.logger.Debug("failed to announce session delete", zap.Error(err))
		}
	}

	clearRecord(a.store)
	return nil
}

// RequestTransaction implements Adapter. The frozen transaction travels
// to the wallet as a JSON-RPC request inside an encrypted envelope; the
// signed bytes come back the same way.
func (a *PairingAdapter) RequestTransaction(ctx context.Context, transactionBytes []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(transactionBytes) == 0 {
		return nil, shared.NewValidationError("transactionBytes", "transaction bytes are required")
	}

	a.mu.Lock()
	session := a.session
	conn := a.conn
	a.mu.Unlock()
	if session == nil || conn == nil {
		return nil, &NotConnectedError{Op: "RequestTransaction"}
	}

	requestID, err := randomIdentifier()
	if err != nil {
		return nil, err
	}

	request := map[string]any{
		"id":      requestID,
		"jsonrpc": "2.0",
		"method":  methodSendTransaction,
		"params": map[string]any{
			"transactionBytes": base64.StdEncoding.EncodeToString(transactionBytes),
		},
	}
	plaintext, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	envelope, err := sealEnvelope(session.secret, session.id, plaintext)
	if err != nil {
		return nil, err
	}

	waiter := make(chan map[string]any, 1)
	a.mu.Lock()
	a.pending[requestID] = waiter
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		delete(a.pending, requestID)
		a.mu.Unlock()
	}()

	message := map[string]any{
		"sessionId": session.id,
		"requestId": requestID,
		"envelope":  envelopeMap(envelope),
	}
	if err := conn.Emit(eventSessionRequest, message); err != nil {
		return nil, fmt.Errorf("failed to send transaction request: %w", err)
	}

	timer := time.NewTimer(a.requestTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("wallet did not answer the transaction request within %s", a.requestTimeout)
	case payload := <-waiter:
		return a.decodeTransactionResponse(session, payload)
	}
}

func (a *PairingAdapter) decodeTransactionResponse(session *pairingSession, payload map[string]any) ([]byte, error) {
	envelopeRaw, ok := payload["envelope"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wallet response carries no envelope")
	}
	envelope, ok := parseEnvelopeMap(envelopeRaw)
	if !ok {
		return nil, fmt.Errorf("wallet response envelope is malformed")
	}

	plaintext, err := openEnvelope(session.secret, session.id, envelope)
	if err != nil {
		return nil, err
	}

	var response struct {
		Result any `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(plaintext, &response); err != nil {
		return nil, fmt.Errorf("wallet response is not valid JSON-RPC: %w", err)
	}
	if response.Error != nil {
		message := strings.TrimSpace(response.Error.Message)
		if message == "" {
			message = fmt.Sprintf("code %d", response.Error.Code)
		}
		return nil, fmt.Errorf("wallet rejected transaction: %s", message)
	}

	result := response.Result
	if resultMap, ok := result.(map[string]any); ok {
		for _, key := range []string{"signedTransaction", "signedTransactionBytes", "transactionBytes"} {
			if value, exists := resultMap[key]; exists {
				result = value
				break
			}
		}
	}
	return decodeSignedTransaction(result)
}

// Accounts implements Adapter.
func (a *PairingAdapter) Accounts(ctx context.Context) []string {
	if ctx.Err() != nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		ids := make([]string, 0, len(a.session.accounts))
		for _, account := range a.session.accounts {
			if id, ok := parseSessionAccount(account, a.network); ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	if a.record != nil {
		return []string{a.record.AccountID}
	}
	return nil
}

func (a *PairingAdapter) adoptRecord(record ConnectionRecord) {
	a.mu.Lock()
	a.record = &record
	a.mu.Unlock()
}

// Close releases the relay connection without announcing a disconnect
// or clearing persisted state. A later Init or Connect dials again.
func (a *PairingAdapter) Close() error {
	a.mu.Lock()
	a.session = nil
	a.conn = nil
	a.initialized = false
	a.initErr = nil
	a.mu.Unlock()
	return nil
}

// parseSessionAccount splits a "hedera:<network>:<accountId>" session
// account and returns the account ID when namespace and network match.
func parseSessionAccount(account, network string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(account), ":")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != pairingNamespace || parts[1] != network {
		return "", false
	}
	if !shared.IsValidAccountID(parts[2]) {
		return "", false
	}
	return parts[2], true
}

// decodeSignedTransaction normalizes the signed-transaction value a
// wallet returns. Wallets differ: base64 strings, hex strings with or
// without a 0x prefix, raw numeric arrays, and Buffer-shaped objects all
// appear in the wild.
func decodeSignedTransaction(value any) ([]byte, error) {
	switch typed := value.(type) {
	case nil:
		return nil, fmt.Errorf("wallet response carries no signed transaction")
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return nil, fmt.Errorf("wallet response carries no signed transaction")
		}
		if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
			decoded, err := hex.DecodeString(trimmed[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid hex transaction bytes: %w", err)
			}
			return decoded, nil
		}
		if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
			return decoded, nil
		}
		if decoded, err := hex.DecodeString(trimmed); err == nil {
			return decoded, nil
		}
		return nil, fmt.Errorf("transaction bytes are neither base64 nor hex")
	case []any:
		if len(typed) == 0 {
			return nil, fmt.Errorf("wallet response carries no signed transaction")
		}
		decoded := make([]byte, 0, len(typed))
		for _, item := range typed {
			number, ok := item.(float64)
			if !ok || number < 0 || number > 255 {
				return nil, fmt.Errorf("transaction byte array includes non-byte value %v", item)
			}
			decoded = append(decoded, byte(number))
		}
		return decoded, nil
	case map[string]any:
		if typeName, _ := typed["type"].(string); typeName == "Buffer" {
			if data, ok := typed["data"].([]any); ok {
				return decodeSignedTransaction(data)
			}
		}
		return nil, fmt.Errorf("unsupported transaction bytes object")
	default:
		return nil, fmt.Errorf("unsupported transaction bytes type %T", value)
	}
}

func envelopeMap(envelope cipherEnvelope) map[string]any {
	return map[string]any{
		"algorithm":      envelope.Algorithm,
		"ciphertext":     envelope.Ciphertext,
		"nonce":          envelope.Nonce,
		"associatedData": envelope.AssociatedData,
	}
}

func stringSlice(value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		result := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok && text != "" {
				result = append(result, text)
			}
		}
		return result
	default:
		return nil
	}
}

func randomIdentifier() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
