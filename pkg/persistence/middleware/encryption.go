package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
)

const envelopeKey = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.MemoryStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts memory values
// using AES-GCM. Keys stay readable so entries can still be listed.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.MemoryStore) ports.MemoryStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error {
	plainText, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	envelope := map[string]any{
		envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
	}
	return m.next.Write(ctx, agentID, scope, key, envelope, ttl)
}

func (m *encryptionMiddleware) Read(ctx context.Context, agentID, scope, key string) (any, error) {
	envelope, err := m.next.Read(ctx, agentID, scope, key)
	if err != nil {
		return nil, err
	}
	return m.open(envelope)
}

// Search decrypts every live entry and matches the query against plaintext,
// since the backing store only sees ciphertext.
func (m *encryptionMiddleware) Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error) {
	entries, err := m.next.Search(ctx, agentID, scope, "")
	if err != nil {
		return nil, err
	}

	out := make([]domain.MemoryEntry, 0, len(entries))
	for _, e := range entries {
		v, err := m.open(e.Value)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Key, err)
		}
		e.Value = v
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, agentID, scope, key string) error {
	return m.next.Delete(ctx, agentID, scope, key)
}

func (m *encryptionMiddleware) open(envelope any) (any, error) {
	fields, _ := envelope.(map[string]any)
	encryptedStr, ok := fields[envelopeKey].(string)
	if !ok {
		// Plain values written before encryption was enabled are rejected.
		return nil, errors.New("value is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt value: %w", err)
	}

	var value any
	if err := json.Unmarshal(plainText, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted value: %w", err)
	}
	return value, nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
