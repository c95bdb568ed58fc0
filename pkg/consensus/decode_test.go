package consensus

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/andybalholm/brotli"
)

func TestDecodeMessageContentPlainPayload(t *testing.T) {
	payload := []byte(`{"event":"created","id":1}`)
	message := LogMessage{
		SequenceNumber: 1,
		Message:        base64.StdEncoding.EncodeToString(payload),
	}

	decoded, err := DecodeMessageContent(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("unexpected payload %q", decoded)
	}
}

func TestDecodeMessageContentWrappedDataURL(t *testing.T) {
	content := []byte("hello gateway")
	wrapped := fmt.Sprintf(
		`{"c":"data:text/plain;base64,%s"}`,
		base64.StdEncoding.EncodeToString(content),
	)
	message := LogMessage{
		SequenceNumber: 2,
		Message:        base64.StdEncoding.EncodeToString([]byte(wrapped)),
	}

	decoded, err := DecodeMessageContent(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Fatalf("unexpected payload %q", decoded)
	}
}

func TestDecodeMessageContentBrotliCompressed(t *testing.T) {
	content := []byte(`{"large":"payload compressed before inscription"}`)

	var compressed bytes.Buffer
	writer := brotli.NewWriter(&compressed)
	if _, err := writer.Write(content); err != nil {
		t.Fatalf("failed to compress fixture: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close compressor: %v", err)
	}

	wrapped := fmt.Sprintf(
		`{"c":"data:application/json;base64,%s"}`,
		base64.StdEncoding.EncodeToString(compressed.Bytes()),
	)
	message := LogMessage{
		SequenceNumber: 3,
		Message:        base64.StdEncoding.EncodeToString([]byte(wrapped)),
	}

	decoded, err := DecodeMessageContent(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Fatalf("expected decompressed payload, got %q", decoded)
	}
}

func TestDecodeMessageContentJSONPassthrough(t *testing.T) {
	// JSON without a "c" wrapper stays untouched.
	payload := []byte(`{"a":1,"b":"two"}`)
	message := LogMessage{
		SequenceNumber: 4,
		Message:        base64.StdEncoding.EncodeToString(payload),
	}

	decoded, err := DecodeMessageContent(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("unexpected payload %q", decoded)
	}
}

func TestDecodeMessageContentRejectsInvalidBase64(t *testing.T) {
	message := LogMessage{SequenceNumber: 5, Message: "%%%not-base64%%%"}
	if _, err := DecodeMessageContent(message); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestDecodeMessageContentRejectsEmptyMessage(t *testing.T) {
	if _, err := DecodeMessageContent(LogMessage{SequenceNumber: 6}); err == nil {
		t.Fatal("expected error for empty message")
	}
}
