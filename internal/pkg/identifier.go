package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// NewSessionID generates a new unique player session ID.
func NewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// NewGameID generates a short numeric identifier for a game.
func NewGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return ""
	}

	return n.String()
}
