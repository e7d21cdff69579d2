package services

import (
	"errors"

	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
)

// storeError converts a repository error into a domain error. Domain errors pass through
// unchanged, a missing row becomes NotFound(notFound) and everything else is wrapped as
// Persistence.
func storeError(action, notFound string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if notFound != "" && errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError(notFound)
	}
	return domain.NewPersistenceError("failed to "+action, err)
}
