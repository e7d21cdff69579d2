package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/password"

	"go.uber.org/zap"
)

// ManagerService manages staff accounts
type ManagerService struct {
	store      *repositories.Store
	bcryptCost int
	log        *zap.SugaredLogger
}

// NewManagerService creates a new manager service
func NewManagerService(store *repositories.Store, bcryptCost int, log *zap.SugaredLogger) *ManagerService {
	if bcryptCost <= 0 {
		bcryptCost = password.DefaultCost
	}
	return &ManagerService{store: store, bcryptCost: bcryptCost, log: log}
}

// ListManagers lists all staff accounts
func (s *ManagerService) ListManagers(ctx context.Context) ([]*models.ManagerResponse, error) {
	managers, err := s.store.Managers.List(ctx)
	if err != nil {
		return nil, storeError("list managers", "", err)
	}
	out := make([]*models.ManagerResponse, 0, len(managers))
	for _, m := range managers {
		out = append(out, m.ToResponse())
	}
	return out, nil
}

// GetManager gets a staff account by ID
func (s *ManagerService) GetManager(ctx context.Context, id uint) (*models.ManagerResponse, error) {
	manager, err := s.store.Managers.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load manager", "manager not found", err)
	}
	return manager.ToResponse(), nil
}

// CreateManager opens a staff account. The role defaults to STAFF.
func (s *ManagerService) CreateManager(ctx context.Context, input *CreateManagerInput) (*models.ManagerResponse, error) {
	if input == nil {
		return nil, domain.NewValidationError("account details are required")
	}
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || fullName == "" {
		return nil, domain.NewValidationError("email and full name are required")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", password.MinLength))
	}
	role := input.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role must be MANAGER or STAFF")
	}

	exists, err := s.store.Managers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeError("check email", "", err)
	}
	if exists {
		return nil, domain.NewConflictError("an account with this email already exists")
	}

	hashed, err := password.HashWithCost(input.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to hash password", err)
	}

	manager := &models.Manager{
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
		Role:         role,
	}
	if err := s.store.Managers.Create(ctx, manager); err != nil {
		return nil, storeError("create manager", "", err)
	}

	s.log.Infow("manager created", "manager_id", manager.ID, "email", manager.Email, "role", manager.Role)
	return manager.ToResponse(), nil
}

// DeleteManager removes a staff account. Nobody can delete their own account and the last
// remaining account is kept.
func (s *ManagerService) DeleteManager(ctx context.Context, id, requestedBy uint) error {
	if id == requestedBy {
		return domain.NewConflictError("you cannot delete your own account")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		// Every account row stays locked so two deletes cannot both pass the last-account check
		ids, err := tx.Managers.ListIDsForUpdate(ctx)
		if err != nil {
			return storeError("lock managers", "", err)
		}
		if !slices.Contains(ids, id) {
			return domain.NewNotFoundError("manager not found")
		}
		if len(ids) <= 1 {
			return domain.NewConflictError("the last account cannot be deleted")
		}
		if err := tx.RefreshTokens.RevokeAllByManagerID(ctx, id); err != nil {
			return storeError("revoke sessions", "", err)
		}
		return storeError("delete manager", "", tx.Managers.Delete(ctx, id))
	})
	if err != nil {
		return storeError("delete manager", "", err)
	}

	s.log.Infow("manager deleted", "manager_id", id, "deleted_by", requestedBy)
	return nil
}
