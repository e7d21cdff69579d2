package services

import (
	"context"
	"testing"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/config"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/logger"
	"hotel-desk/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{
	Secret:           "test-access-secret",
	RefreshSecret:    "test-refresh-secret",
	AccessTokenMins:  15,
	RefreshTokenDays: 7,
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewAuthService(store, testJWT, logger.Nop())
	manager := mustManager(t, store, "boss@hotel.local", domain.RoleManager)

	_, err := svc.Login(ctx, &LoginInput{Email: "boss@hotel.local", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@hotel.local", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err := svc.Login(ctx, &LoginInput{Email: " BOSS@hotel.local", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, manager.ID, resp.Manager.ID)
	require.NotNil(t, resp.Manager.LastLoginAt)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, claims.ManagerID)
	assert.Equal(t, string(domain.RoleManager), claims.Role)

	_, err = svc.ValidateAccessToken(resp.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	stored, err := store.Managers.GetByID(ctx, manager.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestRefreshToken_Rotation(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewAuthService(store, testJWT, logger.Nop())
	mustManager(t, store, "boss@hotel.local", domain.RoleManager)

	login, err := svc.Login(ctx, &LoginInput{Email: "boss@hotel.local", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// the old token is spent
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	require.NoError(t, svc.Logout(ctx, rotated.RefreshToken))
	_, err = svc.RefreshToken(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewAuthService(store, testJWT, logger.Nop())
	manager := mustManager(t, store, "boss@hotel.local", domain.RoleManager)

	first, err := svc.Login(ctx, &LoginInput{Email: "boss@hotel.local", Password: "password123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Email: "boss@hotel.local", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, manager.ID))

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := svc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, domain.ErrTokenRevoked)
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewAuthService(store, testJWT, logger.Nop())
	manager := mustManager(t, store, "boss@hotel.local", domain.RoleManager)

	require.NoError(t, store.RefreshTokens.Create(ctx, &models.RefreshToken{
		ManagerID: manager.ID,
		TokenHash: password.HashToken("old"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, store.RefreshTokens.Create(ctx, &models.RefreshToken{
		ManagerID: manager.ID,
		TokenHash: password.HashToken("fresh"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	n, err := svc.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = store.RefreshTokens.GetByTokenHash(ctx, password.HashToken("fresh"))
	assert.NoError(t, err)
}
