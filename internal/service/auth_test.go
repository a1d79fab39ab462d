package service

import (
	"context"
	"testing"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("paddle-hard"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{ID: 1, Name: "Ada Admin", Email: "ada@test.com", PasswordHash: string(hash), IsAdmin: true}

	tokens := security.NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "ada@test.com").Return(admin, nil)

		access, refresh, user, err := NewAuthService(repo, tokens).Login(ctx, "  Ada@Test.com ", "paddle-hard")
		require.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.NotEmpty(t, refresh)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.True(t, claims.HasRole(domain.RoleAdmin))
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "ada@test.com").Return(admin, nil)

		_, _, _, err := NewAuthService(repo, tokens).Login(ctx, "ada@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, domain.ErrNotFound)

		_, _, _, err := NewAuthService(repo, tokens).Login(ctx, "nobody@test.com", "paddle-hard")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("Roles are re-read", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "ada@test.com"}, nil)

		refresh, err := tokens.GenerateRefreshToken(1, "ada@test.com")
		require.NoError(t, err)

		access, _, err := NewAuthService(repo, tokens).RefreshToken(ctx, refresh)
		require.NoError(t, err)
		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.False(t, claims.HasRole(domain.RoleAdmin))
	})

	t.Run("Access token rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		access, err := tokens.GenerateAccessToken(1, "ada@test.com", nil)
		require.NoError(t, err)

		_, _, err = NewAuthService(repo, tokens).RefreshToken(ctx, access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
