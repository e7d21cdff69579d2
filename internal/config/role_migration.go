package config

import (
	"strings"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Role labels used by earlier installs that denote the manager tier. The mangled
// variant comes from a latin1 column holding "Yönetici".
var legacyManagerRoles = []string{"Yönetici", "Y??netici", "Manager", "Administrator"}

// IsLegacyManagerRole reports whether a stored role label grants manager rights
func IsLegacyManagerRole(label string) bool {
	label = strings.TrimSpace(label)
	for _, r := range legacyManagerRoles {
		if strings.EqualFold(label, r) {
			return true
		}
	}
	return strings.EqualFold(label, string(domain.RoleManager))
}

// MigrateManagerRoles rewrites free-form role labels to MANAGER or STAFF. Rows already
// holding one of the two values are left alone, so running it twice is harmless.
func MigrateManagerRoles(db *gorm.DB, log *zap.SugaredLogger) error {
	var labels []string
	if err := db.Model(&models.Manager{}).
		Where("role NOT IN ?", []domain.Role{domain.RoleManager, domain.RoleStaff}).
		Distinct().
		Pluck("role", &labels).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, label := range labels {
			role := domain.RoleStaff
			if IsLegacyManagerRole(label) {
				role = domain.RoleManager
			}
			result := tx.Model(&models.Manager{}).Where("role = ?", label).Update("role", role)
			if result.Error != nil {
				return result.Error
			}
			log.Infow("role migration", "from", label, "to", role, "rows", result.RowsAffected)
		}
		return nil
	})
}
