package repositories

import (
	"context"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"
)

// RoomRepository defines room repository interface
type RoomRepository interface {
	CreateBatch(ctx context.Context, rooms []*models.Room) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context) ([]*models.Room, error)
	UpdateStatus(ctx context.Context, id uint, status domain.RoomStatus) error
	ExistingNumbers(ctx context.Context, numbers []string) ([]string, error)
	ListByIDsForUpdate(ctx context.Context, ids []uint) ([]*models.Room, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error)
}

// GuestRepository defines guest repository interface
// Guests are never deleted.
type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) error
	List(ctx context.Context, offset, limit int) ([]*models.Guest, int64, error)
	ListWithStats(ctx context.Context) ([]*models.GuestStats, error)
}

// ReservationRepository defines reservation repository interface
// Reservations are never deleted.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error)
	UpdateStay(ctx context.Context, reservation *models.Reservation) error
	UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) error
	CountConflicts(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error)
	CountConflictsForUpdate(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error)
	ListActiveByRoom(ctx context.Context, roomID uint) ([]*models.Reservation, error)
	GetActiveDetailByRoom(ctx context.Context, roomID uint) (*models.ReservationDetail, error)
	ListActiveDetails(ctx context.Context) ([]*models.ReservationDetail, error)
	ListDetailsByGuest(ctx context.Context, guestID uint) ([]*models.ReservationDetail, error)
	CountCheckInsBetween(ctx context.Context, from, to time.Time, statuses ...domain.ReservationStatus) (int64, error)
	CountCheckOutsBetween(ctx context.Context, from, to time.Time, statuses ...domain.ReservationStatus) (int64, error)
	CreatedTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// ManagerRepository defines staff account repository interface
type ManagerRepository interface {
	Create(ctx context.Context, manager *models.Manager) error
	GetByID(ctx context.Context, id uint) (*models.Manager, error)
	GetByEmail(ctx context.Context, email string) (*models.Manager, error)
	List(ctx context.Context) ([]*models.Manager, error)
	Delete(ctx context.Context, id uint) error
	ListIDsForUpdate(ctx context.Context) ([]uint, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByManagerID(ctx context.Context, managerID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SnapshotRepository defines occupancy snapshot repository interface
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *models.OccupancySnapshot) error
	LatestBefore(ctx context.Context, day time.Time) (*models.OccupancySnapshot, error)
}
