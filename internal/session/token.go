// Package session implements the server-side session model: opaque tokens,
// a redis-backed store with sliding expiry, and cookie transport.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewToken generates a cryptographically secure session token.
// 32 bytes = 256 bits of entropy.
func NewToken() (string, error) {
	const size = 32

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
