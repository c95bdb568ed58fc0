// Package shared provides common utilities used across the Hashgraph Online
// Gateway SDK for Go. It includes network normalization, operator and gateway
// environment loading, Hedera client construction, key parsing, entity ID
// validation, and the sanitization and redaction helpers the rest of the SDK
// applies before logging.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations with the
// Hedera public ledger.
//
// # Environment Variables
//
// The shared package supports loading operator credentials and gateway
// settings from environment variables or .env files. OperatorConfigFromEnv
// and GatewayConfigFromEnv document the recognized variable names.
//
// # Sensitive Data
//
// Values held under credential-like field names (API keys, private keys,
// passwords, tokens) must never reach logs or error messages. Pass any
// payload through RedactSensitiveData before handing it to a logger.
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package shared
