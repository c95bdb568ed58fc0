// Package sdk is the top-level entry point of the Hashgraph Online
// Gateway SDK. One Client carries a configured gateway connection and
// hands out the consensus, token, and wallet services built on it, so an
// application configures network, credentials, retries, and rate limiting
// exactly once.
//
// # Getting Started
//
//	client, err := sdk.NewClient(sdk.Config{
//		Network: "testnet",
//		APIKey:  os.Getenv("GATEWAY_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	operation, err := client.Consensus().PublishMessage(ctx, "0.0.12345", []byte(`{"event":"audit"}`), consensus.PublishOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	operation, err = client.WaitForOperation(ctx, operation.ID, gateway.WaitOptions{})
//
// # Environment Construction
//
// FromEnv builds the client from HEDERA_NETWORK, GATEWAY_BASE_URL,
// GATEWAY_API_KEY, GATEWAY_DEBUG, and WALLETCONNECT_PROJECT_ID, with the
// same .env discovery the operator helpers use:
//
//	client, err := sdk.FromEnv()
//
// # Wallets
//
// When WALLETCONNECT_PROJECT_ID (or Config.ProjectID) is set the wallet
// manager pairs with remote wallets over the relay; otherwise it connects
// through an injected provider. A custom adapter can be supplied via
// Config.WalletAdapter.
//
//	record, err := client.Wallet().Connect(ctx)
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package sdk
