package services

import (
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/config"

	"go.uber.org/zap"
)

// Registry holds one instance of every service, sharing one store
type Registry struct {
	Auth         *AuthService
	Managers     *ManagerService
	Rooms        *RoomService
	Reservations *ReservationService
	Guests       *GuestService
	Dashboard    *DashboardService
}

// NewRegistry wires all services on store
func NewRegistry(store *repositories.Store, cfg *config.Config, log *zap.SugaredLogger) *Registry {
	return &Registry{
		Auth:         NewAuthService(store, cfg.JWT, log.Named("auth")),
		Managers:     NewManagerService(store, cfg.JWT.BcryptCost, log.Named("managers")),
		Rooms:        NewRoomService(store, log.Named("rooms")),
		Reservations: NewReservationService(store, log.Named("reservations")),
		Guests:       NewGuestService(store, log.Named("guests")),
		Dashboard:    NewDashboardService(store, log.Named("dashboard")),
	}
}
