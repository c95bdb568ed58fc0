package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

const envelopeAlgorithm = "aes-256-gcm"

// cipherEnvelope is the encrypted payload carrier exchanged over the
// pairing relay. Routing fields (session and request identifiers) travel
// beside it in cleartext; everything the wallet acts on is inside.
type cipherEnvelope struct {
	Algorithm      string `json:"algorithm"`
	Ciphertext     string `json:"ciphertext"`
	Nonce          string `json:"nonce"`
	AssociatedData string `json:"associatedData,omitempty"`
}

// sessionKeyPair is the ephemeral secp256k1 keypair generated per pairing
// attempt. The public key is published in the session proposal; the
// private key never leaves the process.
type sessionKeyPair struct {
	privateKey *btcec.PrivateKey
	publicKey  string
}

func newSessionKeyPair() (sessionKeyPair, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return sessionKeyPair{}, err
	}
	return sessionKeyPair{
		privateKey: privateKey,
		publicKey:  hex.EncodeToString(privateKey.PubKey().SerializeCompressed()),
	}, nil
}

// deriveSessionSecret combines the local private key with the wallet's
// published public key into the 32-byte session secret.
func deriveSessionSecret(local sessionKeyPair, peerPublicKeyHex string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(peerPublicKeyHex), "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("peer public key is required")
	}
	peerBytes, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid peer public key: %w", err)
	}
	peerPublicKey, err := btcec.ParsePubKey(peerBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid peer public key: %w", err)
	}

	sharedSecret := btcec.GenerateSharedSecret(local.privateKey, peerPublicKey)
	digest := sha256.Sum256(sharedSecret)
	return digest[:], nil
}

func normalizeEnvelopeSecret(secret []byte) []byte {
	if len(secret) == 32 {
		result := make([]byte, 32)
		copy(result, secret)
		return result
	}
	digest := sha256.Sum256(secret)
	return digest[:]
}

// sealEnvelope encrypts plaintext for the session. The session identifier
// is bound as associated data so an envelope replayed into another
// session fails to open.
func sealEnvelope(secret []byte, sessionID string, plaintext []byte) (cipherEnvelope, error) {
	if sessionID == "" {
		return cipherEnvelope{}, fmt.Errorf("sessionId is required")
	}
	if len(plaintext) == 0 {
		return cipherEnvelope{}, fmt.Errorf("plaintext is required")
	}

	block, err := aes.NewCipher(normalizeEnvelopeSecret(secret))
	if err != nil {
		return cipherEnvelope{}, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return cipherEnvelope{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return cipherEnvelope{}, err
	}

	associatedData := []byte(sessionID)
	ciphertext := gcm.Seal(nil, nonce, plaintext, associatedData)

	return cipherEnvelope{
		Algorithm:      envelopeAlgorithm,
		Ciphertext:     base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:          base64.StdEncoding.EncodeToString(nonce),
		AssociatedData: base64.StdEncoding.EncodeToString(associatedData),
	}, nil
}

// openEnvelope decrypts an envelope received for the session.
func openEnvelope(secret []byte, sessionID string, envelope cipherEnvelope) ([]byte, error) {
	if envelope.Algorithm != "" && envelope.Algorithm != envelopeAlgorithm {
		return nil, fmt.Errorf("unsupported envelope algorithm %q", envelope.Algorithm)
	}

	nonce, err := base64.StdEncoding.DecodeString(envelope.Nonce)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope ciphertext: %w", err)
	}

	associatedData := []byte(sessionID)
	if strings.TrimSpace(envelope.AssociatedData) != "" {
		transmitted, err := base64.StdEncoding.DecodeString(envelope.AssociatedData)
		if err != nil {
			return nil, fmt.Errorf("invalid envelope associated data: %w", err)
		}
		if !bytes.Equal(transmitted, associatedData) {
			return nil, fmt.Errorf("envelope is bound to a different session")
		}
	}

	block, err := aes.NewCipher(normalizeEnvelopeSecret(secret))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, associatedData)
	if err != nil {
		return nil, fmt.Errorf("envelope decryption failed: %w", err)
	}
	return plaintext, nil
}

// parseEnvelopeMap extracts an envelope from a decoded relay payload.
func parseEnvelopeMap(payload map[string]any) (cipherEnvelope, bool) {
	envelope := cipherEnvelope{
		Algorithm:      stringField(payload, "algorithm"),
		Ciphertext:     stringField(payload, "ciphertext"),
		Nonce:          stringField(payload, "nonce"),
		AssociatedData: stringField(payload, "associatedData"),
	}
	if envelope.Ciphertext == "" || envelope.Nonce == "" {
		return cipherEnvelope{}, false
	}
	return envelope, true
}

func stringField(source map[string]any, key string) string {
	if raw, exists := source[key]; exists {
		if typed, ok := raw.(string); ok {
			return typed
		}
	}
	return ""
}
