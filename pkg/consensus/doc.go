// Package consensus provides the consensus-log client of the Hashgraph
// Online Gateway SDK. It creates log topics, publishes and verifies
// messages, and reads consensus-ordered history through the REST gateway.
//
// All inputs are validated locally before any request is dispatched, so a
// malformed topic ID or oversized payload never reaches the wire.
//
// # Publish a Message
//
//	gatewayClient, err := gateway.NewClient(gateway.Config{Network: "testnet"})
//	logs, err := consensus.NewClient(gatewayClient)
//
//	operation, err := logs.PublishMessage(ctx, "0.0.12345", []byte(`{"event":"audit"}`), consensus.PublishOptions{})
//
// # Read and Decode Messages
//
// Messages come back base64-encoded; DecodeMessageContent additionally
// unwraps inscribed data-URL envelopes and brotli-compressed content:
//
//	messages, err := logs.GetMessages(ctx, "0.0.12345", consensus.MessageQueryOptions{Order: "asc"})
//	for _, message := range messages {
//		payload, err := consensus.DecodeMessageContent(message)
//		...
//	}
//
// This package is part of the Hashgraph Online Gateway SDK for Go.
// See https://hol.org for more information about the Hashgraph Online ecosystem.
package consensus
