package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

var randomRead = rand.Read

// GenerateRandomToken returns length random bytes, hex encoded.
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateStateToken returns a 32-character token for OAuth state and DNS verification.
func GenerateStateToken() (string, error) {
	return GenerateRandomToken(16)
}
