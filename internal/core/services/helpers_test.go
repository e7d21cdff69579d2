package services

import (
	"context"
	"testing"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/config"
	"hotel-desk/internal/core/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *repositories.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: config.NowUTC,
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return repositories.NewStore(db)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func mustRoom(t *testing.T, store *repositories.Store, number string, maxGuests int) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		Type:          domain.RoomStandard,
		Status:        domain.RoomAvailable,
		FloorNumber:   1,
		PricePerNight: 500,
		MaxGuests:     maxGuests,
	}
	require.NoError(t, store.Rooms.CreateBatch(context.Background(), []*models.Room{room}))
	return room
}

func mustGuest(t *testing.T, store *repositories.Store, name string) *models.Guest {
	t.Helper()
	guest := &models.Guest{FullName: name, PhoneNumber: "555-0100"}
	require.NoError(t, store.Guests.Create(context.Background(), guest))
	return guest
}

func mustManager(t *testing.T, store *repositories.Store, email string, role domain.Role) *models.Manager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	manager := &models.Manager{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test " + string(role),
		Role:         role,
	}
	require.NoError(t, store.Managers.Create(context.Background(), manager))
	return manager
}

func roomStatus(t *testing.T, store *repositories.Store, id uint) domain.RoomStatus {
	t.Helper()
	room, err := store.Rooms.GetByID(context.Background(), id)
	require.NoError(t, err)
	return room.Status
}

func reservationStatus(t *testing.T, store *repositories.Store, id uint) domain.ReservationStatus {
	t.Helper()
	reservation, err := store.Reservations.GetByID(context.Background(), id)
	require.NoError(t, err)
	return reservation.Status
}
