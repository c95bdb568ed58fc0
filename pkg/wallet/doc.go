// Package wallet connects applications to Hedera wallets for transaction
// signing in the Hashgraph Online Gateway SDK. Three adapter variants
// share one interface: the injected adapter talks to a provider the host
// application registers in-process (the HashPack extension pattern), the
// pairing adapter reaches a remote wallet over a socket.io relay with
// end-to-end encrypted envelopes, and the operator adapter signs with a
// locally held operator key for server-side use.
//
// A Manager owns the active connection: it guards against overlapping
// connect attempts, persists the connection record through a
// SessionStore, and restores it on Init.
//
// # Connect Through an Injected Provider
//
//	wallet.RegisterProvider(wallet.ProviderHashPack, bridge)
//
//	manager, err := wallet.NewManager(wallet.ManagerConfig{
//		Network: "testnet",
//		Store:   wallet.NewFileStore(".wallet-session"),
//	})
//	record, err := manager.Connect(ctx)
//
// # Pair With a Remote Wallet
//
//	manager, err := wallet.NewManager(wallet.ManagerConfig{
//		Network:   "testnet",
//		ProjectID: os.Getenv("WALLETCONNECT_PROJECT_ID"),
//	})
//	record, err := manager.Connect(ctx)
//
// # Sign a Transaction
//
//	signedBytes, err := manager.RequestTransaction(ctx, frozenBytes)
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package wallet
