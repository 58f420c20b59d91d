package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/joinapp/join-backend/internal/constants"
)

// GenerateTokenKey returns a hex-encoded random token key. With 20
// bytes of entropy the key is 40 characters long.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, constants.TokenKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
