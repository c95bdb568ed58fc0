package wallet

import (
	"fmt"
	"strings"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// UnavailableError reports that a wallet provider could not be reached: the
// injected provider never appeared, the pairing relay is down, or the
// provider lacks a required capability.
type UnavailableError struct {
	Adapter string
	Reason  string
}

// NewUnavailableError creates an UnavailableError for the named adapter.
func NewUnavailableError(adapter, reason string) *UnavailableError {
	return &UnavailableError{Adapter: adapter, Reason: reason}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("wallet %s is unavailable: %s", e.Adapter, e.Reason)
}

// ErrorCode implements shared.Coded.
func (e *UnavailableError) ErrorCode() string {
	return shared.CodeWalletUnavailable
}

// NoAccountsError reports that a provider connected but exposed no
// accounts.
type NoAccountsError struct {
	Adapter string
}

func (e *NoAccountsError) Error() string {
	return fmt.Sprintf("wallet %s connected but returned no accounts", e.Adapter)
}

// ErrorCode implements shared.Coded.
func (e *NoAccountsError) ErrorCode() string {
	return shared.CodeNoAccounts
}

// NoSessionAccountError reports that a negotiated pairing session carried
// no account for the requested chain.
type NoSessionAccountError struct {
	Chain    string
	Accounts []string
}

func (e *NoSessionAccountError) Error() string {
	if len(e.Accounts) == 0 {
		return fmt.Sprintf("pairing session carries no account for chain %s", e.Chain)
	}
	return fmt.Sprintf(
		"pairing session carries no account for chain %s (offered: %s)",
		e.Chain,
		strings.Join(e.Accounts, ", "),
	)
}

// ErrorCode implements shared.Coded.
func (e *NoSessionAccountError) ErrorCode() string {
	return shared.CodeNoSessionAccount
}

// NotConnectedError reports an operation that requires an active session.
type NotConnectedError struct {
	Op string
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("%s requires a connected wallet", e.Op)
}

// ErrorCode implements shared.Coded.
func (e *NotConnectedError) ErrorCode() string {
	return shared.CodeNotConnected
}

// ConnectInProgressError reports a Connect call that arrived while another
// connect attempt was still running.
type ConnectInProgressError struct{}

func (e *ConnectInProgressError) Error() string {
	return "a wallet connect attempt is already in progress"
}

// ErrorCode implements shared.Coded.
func (e *ConnectInProgressError) ErrorCode() string {
	return shared.CodeConnectInProgress
}

// NoAdapterError reports an operation on a manager that was never given a
// wallet adapter.
type NoAdapterError struct {
	Op string
}

func (e *NoAdapterError) Error() string {
	return fmt.Sprintf("%s failed: no wallet adapter configured", e.Op)
}

// ErrorCode implements shared.Coded.
func (e *NoAdapterError) ErrorCode() string {
	return shared.CodeNoAdapter
}
