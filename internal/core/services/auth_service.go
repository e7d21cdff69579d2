package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/config"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/jwt"
	"hotel-desk/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	store *repositories.Store
	cfg   config.JWTConfig
	log   *zap.SugaredLogger
}

// NewAuthService creates a new auth service
func NewAuthService(store *repositories.Store, cfg config.JWTConfig, log *zap.SugaredLogger) *AuthService {
	return &AuthService{store: store, cfg: cfg, log: log}
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Manager      *models.ManagerResponse `json:"manager"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// VerifyCredentials returns the account matching email and password. Unknown email and
// wrong password give the same error.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, plain string) (*models.Manager, error) {
	email = normalizeEmail(email)
	if email == "" || plain == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	manager, err := s.store.Managers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, storeError("load manager", "", err)
	}
	if !password.Verify(plain, manager.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return manager, nil
}

// Login authenticates a manager, records the login time and opens a session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if input == nil {
		return nil, domain.NewValidationError("email and password are required")
	}
	manager, err := s.VerifyCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.store.Managers.TouchLastLogin(ctx, manager.ID, now); err != nil {
		return nil, storeError("record login", "", err)
	}
	manager.LastLoginAt = &now

	resp, err := s.openSession(ctx, s.store, manager)
	if err != nil {
		return nil, err
	}

	s.log.Infow("manager logged in", "manager_id", manager.ID, "email", manager.Email)
	return resp, nil
}

// RefreshToken rotates a refresh token: the presented one is revoked and a new pair issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	var resp *AuthResponse
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		stored, err := tx.RefreshTokens.GetByTokenHash(ctx, password.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenRevoked
			}
			return storeError("load refresh token", "", err)
		}
		if stored.IsExpired() {
			return domain.ErrTokenExpired
		}
		if stored.ManagerID != claims.ManagerID {
			return domain.ErrTokenInvalid
		}

		manager, err := tx.Managers.GetByID(ctx, claims.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnauthorized
			}
			return storeError("load manager", "", err)
		}

		if err := tx.RefreshTokens.Revoke(ctx, stored.ID); err != nil {
			return storeError("revoke refresh token", "", err)
		}

		resp, err = s.openSession(ctx, tx, manager)
		return err
	})
	if err != nil {
		if isAuthError(err) {
			return nil, err
		}
		return nil, storeError("refresh token", "", err)
	}

	s.log.Infow("token refreshed", "manager_id", claims.ManagerID)
	return resp, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.store.RefreshTokens.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
		return storeError("revoke refresh token", "", err)
	}
	s.log.Infow("manager logged out")
	return nil
}

// LogoutAll revokes all refresh tokens of a manager
func (s *AuthService) LogoutAll(ctx context.Context, managerID uint) error {
	if err := s.store.RefreshTokens.RevokeAllByManagerID(ctx, managerID); err != nil {
		return storeError("revoke sessions", "", err)
	}
	s.log.Infow("all sessions revoked", "manager_id", managerID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// PurgeExpiredTokens deletes refresh tokens past their expiry
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.store.RefreshTokens.DeleteExpired(ctx)
	if err != nil {
		return 0, storeError("purge refresh tokens", "", err)
	}
	return n, nil
}

func (s *AuthService) openSession(ctx context.Context, store *repositories.Store, manager *models.Manager) (*AuthResponse, error) {
	tokens, err := s.generateTokens(manager)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to sign tokens", err)
	}

	token := &models.RefreshToken{
		ManagerID: manager.ID,
		TokenHash: password.HashToken(tokens.RefreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.RefreshTokenDays),
	}
	if err := store.RefreshTokens.Create(ctx, token); err != nil {
		return nil, storeError("store refresh token", "", err)
	}

	return &AuthResponse{
		Manager:      manager.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(manager *models.Manager) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		manager.ID,
		manager.Email,
		manager.FullName,
		string(manager.Role),
		s.cfg.Secret,
		s.cfg.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// The token id keeps two refresh tokens issued within the same second distinct
	refreshToken, err := jwt.GenerateRefreshToken(
		manager.ID,
		uuid.New().String(),
		s.cfg.RefreshSecret,
		s.cfg.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func isAuthError(err error) bool {
	for _, target := range []error{
		domain.ErrUnauthorized,
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
		domain.ErrTokenRevoked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
