package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret returns n random bytes, hex encoded.
func GenerateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateJWTSecrets produces a distinct 256-bit secret for each of the
// access and refresh signing keys.
func GenerateJWTSecrets() (accessSecret, refreshSecret string, err error) {
	if accessSecret, err = GenerateSecret(32); err != nil {
		return "", "", fmt.Errorf("failed to generate access secret: %w", err)
	}
	if refreshSecret, err = GenerateSecret(32); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	return accessSecret, refreshSecret, nil
}
