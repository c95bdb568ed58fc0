// Package gateway provides the REST gateway client used by the consensus,
// token, and wallet packages in the Hashgraph Online Gateway SDK. It handles
// request signing headers, sliding-window rate limiting, bounded
// exponential-backoff retries, and operation status polling.
//
// The gateway fronts the Hedera public ledger so applications can submit
// consensus messages and token transactions over plain HTTPS without running
// their own network nodes.
//
// # Retry Behavior
//
// Transport failures, HTTP 429, and 5xx responses retry with exponential
// backoff up to the configured budget; other client errors return
// immediately. Exhausting the budget yields a RetryExhaustedError carrying
// the final cause.
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package gateway
