package repositories

import (
	"context"
	"testing"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupDryRunStore builds a store on the MySQL dialect that renders queries without a server
// and records every SELECT it builds.
func setupDryRunStore(t *testing.T) (*Store, *[]string) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "hotel:secret@tcp(127.0.0.1:3306)/hotel?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Query().After("gorm:query").Register("test:record_sql", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return NewStore(db), &statements
}

func TestGuardReads_LockRows(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		run    func(store *Store)
		locked bool
	}{
		{"room by id", func(s *Store) { _, _ = s.Rooms.GetByIDForUpdate(ctx, 1) }, true},
		{"rooms by ids", func(s *Store) { _, _ = s.Rooms.ListByIDsForUpdate(ctx, []uint{1, 2}) }, true},
		{"reservation by id", func(s *Store) { _, _ = s.Reservations.GetByIDForUpdate(ctx, 1) }, true},
		{"conflict count", func(s *Store) { _, _ = s.Reservations.CountConflictsForUpdate(ctx, 1, day(5), day(7), 2) }, true},
		{"manager ids", func(s *Store) { _, _ = s.Managers.ListIDsForUpdate(ctx) }, true},
		{"plain conflict count", func(s *Store) { _, _ = s.Reservations.CountConflicts(ctx, 1, day(5), day(7), 0) }, false},
		{"plain reservation", func(s *Store) { _, _ = s.Reservations.GetByID(ctx, 1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, statements := setupDryRunStore(t)
			tt.run(store)

			require.Len(t, *statements, 1)
			sql := (*statements)[0]
			if tt.locked {
				assert.Contains(t, sql, "FOR UPDATE")
			} else {
				assert.NotContains(t, sql, "FOR UPDATE")
			}
		})
	}
}

func TestCountConflictsForUpdate_MatchesPlainCount(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	room, stays := seedRoomWithStays(t, store)

	plain, err := store.Reservations.CountConflicts(ctx, room.ID, day(3), day(5), 0)
	require.NoError(t, err)
	locked, err := store.Reservations.CountConflictsForUpdate(ctx, room.ID, day(3), day(5), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, plain)
	assert.Equal(t, plain, locked)

	locked, err = store.Reservations.CountConflictsForUpdate(ctx, room.ID, day(3), day(5), stays[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, locked)

	reservation, err := store.Reservations.GetByIDForUpdate(ctx, stays[0].ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, reservation.RoomID)
}

func TestManagerIDsForUpdate(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	ids, err := store.Managers.ListIDsForUpdate(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, email := range []string{"a@hotel.local", "b@hotel.local"} {
		manager := &models.Manager{Email: email, PasswordHash: "x", FullName: "Desk", Role: domain.RoleStaff}
		require.NoError(t, store.Managers.Create(ctx, manager))
	}
	ids, err = store.Managers.ListIDsForUpdate(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])
}
