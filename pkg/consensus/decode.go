package consensus

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
)

const dataURLPartCount = 2

// DecodeMessageContent returns the payload carried by a log message. The
// gateway delivers payloads base64-encoded; inscribed content may
// additionally arrive wrapped in a data-URL envelope, optionally brotli
// compressed. Both layers are unwrapped here.
func DecodeMessageContent(message LogMessage) ([]byte, error) {
	trimmed := strings.TrimSpace(message.Message)
	if trimmed == "" {
		return nil, fmt.Errorf("message %d carries no payload", message.SequenceNumber)
	}

	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message payload: %w", err)
	}

	return normalizeWrappedPayload(raw)
}

// normalizeWrappedPayload unwraps `{"c":"data:...;base64,..."}` envelopes.
// Payloads that are not wrapped pass through unchanged.
func normalizeWrappedPayload(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return payload, nil
	}
	if !bytes.Contains(trimmed, []byte(`"c"`)) {
		return payload, nil
	}

	wrappedContent := parseWrappedContent(trimmed)
	if wrappedContent == "" {
		return payload, nil
	}

	decodedContent, err := decodeDataURLPayload(wrappedContent)
	if err != nil {
		return nil, err
	}

	brotliReader := brotli.NewReader(bytes.NewReader(decodedContent))
	decompressed, err := io.ReadAll(brotliReader)
	if err == nil && len(decompressed) > 0 {
		return decompressed, nil
	}

	return decodedContent, nil
}

func parseWrappedContent(payload []byte) string {
	var wrapped struct {
		Content string `json:"c"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return ""
	}
	return strings.TrimSpace(wrapped.Content)
}

func decodeDataURLPayload(input string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "data:") {
		return nil, fmt.Errorf("unsupported wrapped payload format")
	}

	parts := strings.SplitN(trimmed, ",", dataURLPartCount)
	if len(parts) != dataURLPartCount {
		return nil, fmt.Errorf("invalid wrapped payload data URL")
	}

	header := strings.ToLower(parts[0])
	dataPart := parts[1]
	if strings.Contains(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("failed to decode wrapped base64 payload: %w", err)
		}
		return decoded, nil
	}

	unescaped, err := url.QueryUnescape(dataPart)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped payload: %w", err)
	}
	return []byte(unescaped), nil
}
