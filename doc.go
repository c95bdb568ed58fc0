// The Hashgraph Online Gateway SDK for Go is the official Go client for
// the Hashgraph Online REST gateway. It provides packages for writing and
// reading consensus logs, managing tokens, tracking asynchronous gateway
// operations, and connecting wallets through injected providers, a
// pairing relay, or a locally held operator key.
//
// # Packages
//
// The SDK is organized by concern:
//
//   - pkg/sdk: single entry point bundling every service
//   - pkg/gateway: REST client with bounded retries and rate limiting
//   - pkg/consensus: consensus-log topics, messages, and verification
//   - pkg/token: token creation, minting, transfers, and balances
//   - pkg/wallet: wallet adapters, session persistence, and the manager
//   - pkg/ratelimit: sliding-window request limiter
//   - pkg/shared: validation, sanitization, and environment configuration
//
// # Documentation
//
// Full SDK documentation: https://hol.org/docs/libraries/gateway-sdk/
//
// Hashgraph Online ecosystem: https://hol.org
//
// # Installation
//
//	go get github.com/hashgraph-online/gateway-sdk-go@latest
package gateway_sdk_go
