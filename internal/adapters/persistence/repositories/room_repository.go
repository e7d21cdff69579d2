package repositories

import (
	"context"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roomRepository implements RoomRepository interface
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// CreateBatch inserts rooms in a single statement
func (r *roomRepository) CreateBatch(ctx context.Context, rooms []*models.Room) error {
	return r.db.WithContext(ctx).Create(&rooms).Error
}

// GetByID gets a room by ID
func (r *roomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDForUpdate gets a room by ID and locks the row until the transaction ends
func (r *roomRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List lists all rooms by floor then room number
func (r *roomRepository) List(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Order("floor_number ASC").
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

// UpdateStatus sets the status of a room
func (r *roomRepository) UpdateStatus(ctx context.Context, id uint, status domain.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ExistingNumbers returns which of the given room numbers are already taken
func (r *roomRepository) ExistingNumbers(ctx context.Context, numbers []string) ([]string, error) {
	var taken []string
	if len(numbers) == 0 {
		return taken, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("room_number IN ?", numbers).
		Pluck("room_number", &taken).Error
	return taken, err
}

// ListByIDsForUpdate loads the rooms among ids and locks them until the transaction ends
func (r *roomRepository) ListByIDsForUpdate(ctx context.Context, ids []uint) ([]*models.Room, error) {
	rooms := make([]*models.Room, 0, len(ids))
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rooms).Error
	return rooms, err
}

// DeleteByIDs hard deletes rooms. Reservations referencing them are kept.
func (r *roomRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Room{})
	return result.RowsAffected, result.Error
}

// Count counts all rooms
func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&count).Error
	return count, err
}

// CountByStatus counts rooms with status
func (r *roomRepository) CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
