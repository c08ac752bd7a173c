package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sudoku-backend/internal/apperror"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	t.Run("A generated token parses back to the same player", func(t *testing.T) {
		// Given: a signed token for a player
		token, err := auth.GenerateToken("player-42")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		// When: parsing it with the same key
		playerID, err := auth.ParseToken(token)

		// Then: the original player ID comes back
		require.NoError(t, err)
		assert.Equal(t, "player-42", playerID)
	})

	t.Run("Garbage input is rejected", func(t *testing.T) {
		_, err := auth.ParseToken("not-a-token")

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("A token signed with another key is rejected", func(t *testing.T) {
		// Given: a token issued under a different secret
		other := NewAuthService("another-secret")
		token, err := other.GenerateToken("player-42")
		require.NoError(t, err)

		// When/Then: our service refuses it
		_, err = auth.ParseToken(token)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("An empty token is rejected", func(t *testing.T) {
		_, err := auth.ParseToken("")

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}
