package services

import (
	"context"
	"testing"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/config"
	"flexfit-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testAuthConfig(),
	)
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	t.Run("registers member with tokens and profile", func(t *testing.T) {
		result, err := svc.Register(ctx, &RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleMember), result.User.Role)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)

		var profileCount int64
		db.Model(&models.Profile{}).Where("user_id = ?", result.User.ID).Count(&profileCount)
		assert.Equal(t, int64(1), profileCount)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterInput{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	createTestMember(t, db, "Bob", "bob@example.com")

	t.Run("valid credentials succeed", func(t *testing.T) {
		result, err := svc.Login(ctx, &LoginInput{
			Email:    "bob@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bob", result.User.Name)

		claims, err := svc.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)
		assert.Equal(t, string(domain.RoleMember), claims.Role)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{
			Email:    "bob@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	createTestMember(t, db, "Carol", "carol@example.com")

	login, err := svc.Login(ctx, &LoginInput{
		Email:    "carol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("rotation issues new tokens and revokes the old one", func(t *testing.T) {
		refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

		// The rotated-out token is no longer usable
		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	member := createTestMember(t, db, "Dave", "dave@example.com")

	first, err := svc.Login(ctx, &LoginInput{Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("logout revokes only the presented token", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, first.RefreshToken))

		_, err := svc.RefreshToken(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)

		_, err = svc.RefreshToken(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("logout all revokes every session", func(t *testing.T) {
		third, err := svc.Login(ctx, &LoginInput{Email: "dave@example.com", Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, svc.LogoutAll(ctx, member.ID))

		_, err = svc.RefreshToken(ctx, third.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}
