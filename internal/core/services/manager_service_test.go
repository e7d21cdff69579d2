package services

import (
	"context"
	"testing"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/logger"
	"hotel-desk/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateManager(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewManagerService(store, bcrypt.MinCost, logger.Nop())

	created, err := svc.CreateManager(ctx, &CreateManagerInput{
		Email:    "  Front.Desk@Hotel.Local ",
		Password: "password123",
		FullName: "Front Desk",
	})
	require.NoError(t, err)
	assert.Equal(t, "front.desk@hotel.local", created.Email)
	assert.Equal(t, domain.RoleStaff, created.Role)

	stored, err := store.Managers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("password123", stored.PasswordHash))

	_, err = svc.CreateManager(ctx, &CreateManagerInput{
		Email:    "front.desk@hotel.local",
		Password: "password123",
		FullName: "Someone Else",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.CreateManager(ctx, &CreateManagerInput{Email: "a@hotel.local", Password: "short", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateManager(ctx, &CreateManagerInput{Email: "b@hotel.local", Password: "password123", FullName: "B", Role: "OWNER"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	managers, err := svc.ListManagers(ctx)
	require.NoError(t, err)
	assert.Len(t, managers, 1)
}

func TestDeleteManager_Guards(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewManagerService(store, bcrypt.MinCost, logger.Nop())
	only := mustManager(t, store, "boss@hotel.local", domain.RoleManager)

	err := svc.DeleteManager(ctx, only.ID, only.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// nobody else is left to run the hotel
	err = svc.DeleteManager(ctx, only.ID, only.ID+1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	managers, err := store.Managers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, managers, 1)

	err = svc.DeleteManager(ctx, 999, only.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteManager_RevokesSessions(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewManagerService(store, bcrypt.MinCost, logger.Nop())
	boss := mustManager(t, store, "boss@hotel.local", domain.RoleManager)
	clerk := mustManager(t, store, "clerk@hotel.local", domain.RoleStaff)

	token := &models.RefreshToken{
		ManagerID: clerk.ID,
		TokenHash: password.HashToken("clerk-session"),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.RefreshTokens.Create(ctx, token))

	require.NoError(t, svc.DeleteManager(ctx, clerk.ID, boss.ID))

	_, err := svc.GetManager(ctx, clerk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.RefreshTokens.GetByTokenHash(ctx, password.HashToken("clerk-session"))
	assert.Error(t, err)
}

func TestDeleteManager_DownToLastAccount(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewManagerService(store, bcrypt.MinCost, logger.Nop())
	boss := mustManager(t, store, "boss@hotel.local", domain.RoleManager)
	clerk := mustManager(t, store, "clerk@hotel.local", domain.RoleStaff)
	night := mustManager(t, store, "night@hotel.local", domain.RoleStaff)

	require.NoError(t, svc.DeleteManager(ctx, clerk.ID, boss.ID))
	require.NoError(t, svc.DeleteManager(ctx, night.ID, boss.ID))

	// a stale session of a removed account still cannot remove the remaining one
	err := svc.DeleteManager(ctx, boss.ID, night.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = svc.DeleteManager(ctx, clerk.ID, boss.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	managers, err := svc.ListManagers(ctx)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, boss.ID, managers[0].ID)
}
