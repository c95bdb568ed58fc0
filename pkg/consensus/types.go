package consensus

// CreateLogOptions configures a new consensus log topic. Keys are public
// keys in the ledger's string encoding; leave them empty for an open topic.
type CreateLogOptions struct {
	Memo      string `json:"memo,omitempty"`
	AdminKey  string `json:"adminKey,omitempty"`
	SubmitKey string `json:"submitKey,omitempty"`
}

// PublishOptions carries optional metadata for a published message.
type PublishOptions struct {
	TransactionMemo string `json:"transactionMemo,omitempty"`
}

// LogInfo describes a consensus log topic.
type LogInfo struct {
	TopicID        string `json:"topicId"`
	Memo           string `json:"memo,omitempty"`
	AdminKey       string `json:"adminKey,omitempty"`
	SubmitKey      string `json:"submitKey,omitempty"`
	SequenceNumber int64  `json:"sequenceNumber"`
	Deleted        bool   `json:"deleted,omitempty"`
}

// LogMessage is a single consensus-ordered message. Message holds the
// base64-encoded payload as returned by the gateway.
type LogMessage struct {
	TopicID            string `json:"topicId"`
	SequenceNumber     int64  `json:"sequenceNumber"`
	ConsensusTimestamp string `json:"consensusTimestamp"`
	PayerAccountID     string `json:"payerAccountId,omitempty"`
	Message            string `json:"message"`
	RunningHash        string `json:"runningHash,omitempty"`
}

// MessageQueryOptions filters GetMessages results.
type MessageQueryOptions struct {
	SequenceNumber string
	Limit          int
	Order          string
}

// VerifyOptions identifies the message to verify. Set SequenceNumber to
// check a known position, or Payload to search by content.
type VerifyOptions struct {
	SequenceNumber int64
	Payload        []byte
}

// VerifyResult reports whether a payload was found in a log and where.
type VerifyResult struct {
	Verified           bool   `json:"verified"`
	TopicID            string `json:"topicId,omitempty"`
	SequenceNumber     int64  `json:"sequenceNumber,omitempty"`
	ConsensusTimestamp string `json:"consensusTimestamp,omitempty"`
}

type logMessagesResponse struct {
	Messages []LogMessage `json:"messages"`
	Links    struct {
		Next string `json:"next"`
	} `json:"links"`
}
