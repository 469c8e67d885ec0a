package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	jose "github.com/go-jose/go-jose/v3"
)

var ErrInvalidKey = errors.New("encryption key must be 32 bytes (64 hex chars)")

// TokenCipher seals third-party credentials (CRM OAuth tokens) at rest as
// compact JWE strings using direct A256GCM encryption.
type TokenCipher struct {
	key []byte
}

// NewTokenCipher builds a cipher from a 32-byte hex key.
func NewTokenCipher(keyHex string) (*TokenCipher, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidKey
	}
	return &TokenCipher{key: key}, nil
}

// Seal encrypts plaintext. Empty input stays empty.
func (c *TokenCipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	enc, err := jose.NewEncrypter(jose.A256GCM, jose.Recipient{Algorithm: jose.DIRECT, Key: c.key}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypter: %w", err)
	}
	obj, err := enc.Encrypt([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}
	return obj.CompactSerialize()
}

// Open decrypts a value produced by Seal.
func (c *TokenCipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	obj, err := jose.ParseEncrypted(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to parse sealed token: %w", err)
	}
	plaintext, err := obj.Decrypt(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(plaintext), nil
}
