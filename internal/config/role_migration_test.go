package config

import (
	"testing"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: NowUTC,
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestIsLegacyManagerRole(t *testing.T) {
	for _, label := range []string{"Yönetici", "Y??netici", "yönetici", " Manager ", "administrator", "MANAGER"} {
		assert.True(t, IsLegacyManagerRole(label), label)
	}
	for _, label := range []string{"Resepsiyon", "Staff", "", "Assistant Manager"} {
		assert.False(t, IsLegacyManagerRole(label), label)
	}
}

func TestMigrateManagerRoles(t *testing.T) {
	db := setupTestDB(t)

	labels := map[string]domain.Role{
		"a@hotel.local": "Yönetici",
		"b@hotel.local": "Y??netici",
		"c@hotel.local": "Resepsiyon",
		"d@hotel.local": domain.RoleManager,
		"e@hotel.local": domain.RoleStaff,
	}
	for email, role := range labels {
		require.NoError(t, db.Create(&models.Manager{Email: email, PasswordHash: "x", FullName: email, Role: role}).Error)
	}

	require.NoError(t, MigrateManagerRoles(db, logger.Nop()))
	// second run finds nothing to do
	require.NoError(t, MigrateManagerRoles(db, logger.Nop()))

	want := map[string]domain.Role{
		"a@hotel.local": domain.RoleManager,
		"b@hotel.local": domain.RoleManager,
		"c@hotel.local": domain.RoleStaff,
		"d@hotel.local": domain.RoleManager,
		"e@hotel.local": domain.RoleStaff,
	}
	var managers []models.Manager
	require.NoError(t, db.Find(&managers).Error)
	require.Len(t, managers, len(want))
	for _, m := range managers {
		assert.Equal(t, want[m.Email], m.Role, m.Email)
	}
}

func TestSeeder_FirstManager(t *testing.T) {
	db := setupTestDB(t)
	seed := SeedConfig{Email: "Admin@Hotel.Local", Password: "admin123456", FullName: "System Manager"}

	require.NoError(t, NewSeeder(db, seed, bcrypt.MinCost, logger.Nop()).Run())
	require.NoError(t, NewSeeder(db, seed, bcrypt.MinCost, logger.Nop()).Run())

	var managers []models.Manager
	require.NoError(t, db.Find(&managers).Error)
	require.Len(t, managers, 1)
	assert.Equal(t, "admin@hotel.local", managers[0].Email)
	assert.Equal(t, domain.RoleManager, managers[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(managers[0].PasswordHash), []byte("admin123456")))
}
