package repositories

import (
	"context"
	"time"

	"hotel-desk/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// managerRepository implements ManagerRepository interface
type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new manager repository
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

// Create creates a new manager
func (r *managerRepository) Create(ctx context.Context, manager *models.Manager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

// GetByID gets a manager by ID
func (r *managerRepository) GetByID(ctx context.Context, id uint) (*models.Manager, error) {
	var manager models.Manager
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

// GetByEmail gets a manager by email
func (r *managerRepository) GetByEmail(ctx context.Context, email string) (*models.Manager, error) {
	var manager models.Manager
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

// List lists all managers, oldest account first
func (r *managerRepository) List(ctx context.Context) ([]*models.Manager, error) {
	var managers []*models.Manager
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&managers).Error
	return managers, err
}

// Delete deletes a manager
func (r *managerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Manager{}, id).Error
}

// ListIDsForUpdate locks every account row and returns the ids
func (r *managerRepository) ListIDsForUpdate(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Manager{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// ExistsByEmail checks if email exists
func (r *managerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Manager{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// TouchLastLogin records a successful login
func (r *managerRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Manager{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
