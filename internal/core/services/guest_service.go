package services

import (
	"context"
	"strings"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/core/domain"

	"go.uber.org/zap"
)

// GuestService manages guest records. Guests are never deleted.
type GuestService struct {
	store *repositories.Store
	log   *zap.SugaredLogger
}

// NewGuestService creates a new guest service
func NewGuestService(store *repositories.Store, log *zap.SugaredLogger) *GuestService {
	return &GuestService{store: store, log: log}
}

// ListGuests lists guests newest first
func (s *GuestService) ListGuests(ctx context.Context, offset, limit int) ([]*models.Guest, int64, error) {
	guests, total, err := s.store.Guests.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, storeError("list guests", "", err)
	}
	return guests, total, nil
}

// ListGuestsWithStats lists guests with stay count, revenue and last stay date
func (s *GuestService) ListGuestsWithStats(ctx context.Context) ([]*models.GuestStats, error) {
	stats, err := s.store.Guests.ListWithStats(ctx)
	if err != nil {
		return nil, storeError("list guest stats", "", err)
	}
	return stats, nil
}

// GetGuestReservations lists the stay history of a guest
func (s *GuestService) GetGuestReservations(ctx context.Context, guestID uint) ([]*models.ReservationDetail, error) {
	if _, err := s.store.Guests.GetByID(ctx, guestID); err != nil {
		return nil, storeError("load guest", "guest not found", err)
	}
	details, err := s.store.Reservations.ListDetailsByGuest(ctx, guestID)
	if err != nil {
		return nil, storeError("list guest reservations", "", err)
	}
	return details, nil
}

// CreateGuest registers a guest without a booking
func (s *GuestService) CreateGuest(ctx context.Context, input *NewGuestInput) (*models.Guest, error) {
	if input == nil || strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, domain.NewValidationError("guest name and phone number are required")
	}

	guest := &models.Guest{
		FullName:    strings.TrimSpace(input.FullName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       trimOptional(input.Email),
		Gender:      trimOptional(input.Gender),
	}
	if err := s.store.Guests.Create(ctx, guest); err != nil {
		return nil, storeError("create guest", "", err)
	}

	s.log.Infow("guest created", "guest_id", guest.ID)
	return guest, nil
}

// UpdateGuest overwrites name, phone and email of a guest
func (s *GuestService) UpdateGuest(ctx context.Context, id uint, input *UpdateGuestInput) (*models.Guest, error) {
	if input == nil || strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, domain.NewValidationError("guest name and phone number are required")
	}

	guest, err := s.store.Guests.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load guest", "guest not found", err)
	}

	guest.FullName = strings.TrimSpace(input.FullName)
	guest.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	guest.Email = trimOptional(input.Email)
	if err := s.store.Guests.Update(ctx, guest); err != nil {
		return nil, storeError("update guest", "", err)
	}

	s.log.Infow("guest updated", "guest_id", guest.ID)
	return guest, nil
}
