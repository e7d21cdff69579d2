package repositories

import (
	"context"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new occupancy snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Upsert stores the snapshot for its day, replacing an earlier one taken the same day
func (r *snapshotRepository) Upsert(ctx context.Context, snapshot *models.OccupancySnapshot) error {
	snapshot.Day = domain.Day(snapshot.Day)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_rooms", "occupied_rooms", "rate"}),
		}).
		Create(snapshot).Error
}

// LatestBefore returns the newest snapshot taken before day
func (r *snapshotRepository) LatestBefore(ctx context.Context, day time.Time) (*models.OccupancySnapshot, error) {
	var snapshot models.OccupancySnapshot
	err := r.db.WithContext(ctx).
		Where("day < ?", domain.Day(day)).
		Order("day DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
