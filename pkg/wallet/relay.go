package wallet

import (
	socketio "github.com/zhouhui8915/go-socket.io-client"
)

// DefaultRelayURL is the pairing relay dialed when PairingConfig leaves
// RelayURL empty.
const DefaultRelayURL = "wss://relay.hashgraph.online"

// Relay events shared with the wallet side of a pairing session.
const (
	eventSessionPropose  = "session_propose"
	eventSessionApprove  = "session_approve"
	eventSessionRequest  = "session_request"
	eventSessionResponse = "session_response"
	eventSessionDelete   = "session_delete"
)

// relayConn is the slice of the socket.io client the pairing adapter
// needs. Tests substitute an in-process implementation.
type relayConn interface {
	On(event string, handler any) error
	Emit(event string, args ...any) error
}

// relayDialer opens a relay connection for a project.
type relayDialer func(relayURL, projectID string) (relayConn, error)

func dialRelay(relayURL, projectID string) (relayConn, error) {
	options := &socketio.Options{
		Transport: "websocket",
		Query: map[string]string{
			"projectId": projectID,
		},
		Header: map[string][]string{
			"x-project-id": {projectID},
		},
	}
	return socketio.NewClient(relayURL, options)
}
