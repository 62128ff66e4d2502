package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	t.Run("valid token round trip", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "Alice", "admin", "secret", 15)
		require.NoError(t, err)

		claims, err := ValidateAccessToken(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "Alice", "admin", "secret", 15)
		require.NoError(t, err)

		_, err = ValidateAccessToken(token, "other-secret")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "Alice", "admin", "secret", -1)
		require.NoError(t, err)

		_, err = ValidateAccessToken(token, "secret")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("valid token round trip", func(t *testing.T) {
		token, err := GenerateRefreshToken(42, "token-id-1", "refresh-secret", 7)
		require.NoError(t, err)

		claims, err := ValidateRefreshToken(token, "refresh-secret")
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "token-id-1", claims.TokenID)
	})

	t.Run("access and refresh tokens are not interchangeable", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "Alice", "member", "secret", 15)
		require.NoError(t, err)

		// Different signing secret, so validation fails
		_, err = ValidateRefreshToken(token, "refresh-secret")
		assert.Error(t, err)
	})
}
