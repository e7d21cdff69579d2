package config

import (
	"strings"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db   *gorm.DB
	seed SeedConfig
	cost int
	log  *zap.SugaredLogger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, seed SeedConfig, bcryptCost int, log *zap.SugaredLogger) *Seeder {
	return &Seeder{db: db, seed: seed, cost: bcryptCost, log: log}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	s.log.Infow("startup", "status", "running database seeders")

	if err := s.seedFirstManager(); err != nil {
		s.log.Warnw("first manager seeder skipped", "err", err)
	}

	return nil
}

// seedFirstManager creates a MANAGER account when no account exists yet, so a fresh
// install can log in and create the rest of the staff.
func (s *Seeder) seedFirstManager() error {
	var count int64
	if err := s.db.Model(&models.Manager{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.HashWithCost(s.seed.Password, s.cost)
	if err != nil {
		return err
	}

	manager := &models.Manager{
		Email:        strings.ToLower(strings.TrimSpace(s.seed.Email)),
		PasswordHash: hashed,
		FullName:     s.seed.FullName,
		Role:         domain.RoleManager,
	}
	if err := s.db.Create(manager).Error; err != nil {
		return err
	}

	s.log.Infow("startup", "status", "first manager account created", "email", manager.Email)
	return nil
}
