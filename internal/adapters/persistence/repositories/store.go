package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
// A Store built inside Transaction binds every repository to that transaction.
type Store struct {
	db *gorm.DB

	Rooms         RoomRepository
	Guests        GuestRepository
	Reservations  ReservationRepository
	Managers      ManagerRepository
	RefreshTokens RefreshTokenRepository
	Snapshots     SnapshotRepository
}

// NewStore creates a new store on db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Rooms:         NewRoomRepository(db),
		Guests:        NewGuestRepository(db),
		Reservations:  NewReservationRepository(db),
		Managers:      NewManagerRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Snapshots:     NewSnapshotRepository(db),
	}
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a database transaction. The transaction commits when fn
// returns nil and rolls back on any error or panic.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
