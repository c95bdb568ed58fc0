package consensus

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/gateway"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

// Client provides consensus log operations over the REST gateway.
type Client struct {
	gateway *gateway.Client
}

// NewClient creates a consensus client on top of an existing gateway client.
func NewClient(gatewayClient *gateway.Client) (*Client, error) {
	if gatewayClient == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gateway: gatewayClient}, nil
}

// CreateLog submits a topic creation and returns the tracking operation.
func (c *Client) CreateLog(ctx context.Context, options CreateLogOptions) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := ValidateMemo(options.Memo); err != nil {
		return operation, err
	}

	if err := c.gateway.Post(ctx, "/topics", options, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// PublishMessage submits a payload to a log and returns the tracking
// operation. The payload travels base64-encoded.
func (c *Client) PublishMessage(
	ctx context.Context,
	topicID string,
	payload []byte,
	options PublishOptions,
) (gateway.Operation, error) {
	var operation gateway.Operation
	if err := shared.ValidateTopicID(topicID); err != nil {
		return operation, err
	}
	if err := ValidateMessagePayload(payload); err != nil {
		return operation, err
	}

	body := struct {
		Message         string `json:"message"`
		TransactionMemo string `json:"transactionMemo,omitempty"`
	}{
		Message:         base64.StdEncoding.EncodeToString(payload),
		TransactionMemo: options.TransactionMemo,
	}

	path := fmt.Sprintf("/topics/%s/messages", strings.TrimSpace(topicID))
	if err := c.gateway.Post(ctx, path, body, &operation); err != nil {
		return operation, err
	}
	return operation, nil
}

// VerifyMessage asks the gateway whether a message appears in the log,
// identified either by sequence number or by payload. Payloads are hashed
// locally so their content never travels to the gateway.
func (c *Client) VerifyMessage(ctx context.Context, topicID string, options VerifyOptions) (VerifyResult, error) {
	var result VerifyResult
	if err := shared.ValidateTopicID(topicID); err != nil {
		return result, err
	}
	if options.SequenceNumber <= 0 && len(options.Payload) == 0 {
		return result, shared.NewValidationError("verify", "a sequence number or payload is required")
	}

	body := struct {
		SequenceNumber int64  `json:"sequenceNumber,omitempty"`
		PayloadSHA256  string `json:"payloadSha256,omitempty"`
	}{}
	if options.SequenceNumber > 0 {
		body.SequenceNumber = options.SequenceNumber
	}
	if len(options.Payload) > 0 {
		digest := sha256.Sum256(options.Payload)
		body.PayloadSHA256 = hex.EncodeToString(digest[:])
	}

	path := fmt.Sprintf("/topics/%s/verify", strings.TrimSpace(topicID))
	if err := c.gateway.Post(ctx, path, body, &result); err != nil {
		return result, err
	}
	return result, nil
}

// GetLogInfo fetches topic metadata.
func (c *Client) GetLogInfo(ctx context.Context, topicID string) (LogInfo, error) {
	var info LogInfo
	if err := shared.ValidateTopicID(topicID); err != nil {
		return info, err
	}

	path := fmt.Sprintf("/topics/%s", strings.TrimSpace(topicID))
	if err := c.gateway.Get(ctx, path, &info); err != nil {
		return info, err
	}
	return info, nil
}

// GetMessages returns log messages, following pagination links until the
// gateway reports no more pages.
func (c *Client) GetMessages(
	ctx context.Context,
	topicID string,
	options MessageQueryOptions,
) ([]LogMessage, error) {
	if err := shared.ValidateTopicID(topicID); err != nil {
		return nil, err
	}

	values := url.Values{}
	if options.SequenceNumber != "" {
		values.Set("sequencenumber", options.SequenceNumber)
	}
	if options.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", options.Limit))
	}
	if options.Order != "" {
		values.Set("order", options.Order)
	}

	endpoint := fmt.Sprintf("/topics/%s/messages", strings.TrimSpace(topicID))
	if encoded := values.Encode(); encoded != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, encoded)
	}

	result := make([]LogMessage, 0)
	next := endpoint

	for next != "" {
		var page logMessagesResponse
		if err := c.gateway.Get(ctx, next, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Messages...)
		next = page.Links.Next
	}

	return result, nil
}

// GetMessage fetches a single message by sequence number.
func (c *Client) GetMessage(ctx context.Context, topicID string, sequence int64) (LogMessage, error) {
	var message LogMessage
	if err := shared.ValidateTopicID(topicID); err != nil {
		return message, err
	}
	if sequence <= 0 {
		return message, shared.NewValidationError("sequenceNumber", "sequence must be positive")
	}

	path := fmt.Sprintf("/topics/%s/messages/%d", strings.TrimSpace(topicID), sequence)
	if err := c.gateway.Get(ctx, path, &message); err != nil {
		return message, err
	}
	return message, nil
}
