// Package token provides the token service client of the Hashgraph Online
// Gateway SDK. It creates, mints, transfers, and associates tokens through
// the REST gateway and reads token metadata and account balances.
//
// Mutating calls return a gateway.Operation that tracks the asynchronous
// ledger submission; poll it with gateway.Client.WaitForOperation. Inputs
// are validated locally before dispatch.
//
//	gatewayClient, err := gateway.NewClient(gateway.Config{Network: "testnet"})
//	tokens, err := token.NewClient(gatewayClient)
//
//	operation, err := tokens.CreateToken(ctx, token.CreateTokenOptions{
//		Name:   "Demo Points",
//		Symbol: "DEMO",
//	})
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package token
