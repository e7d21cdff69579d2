package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/core/domain"

	"go.uber.org/zap"
)

// ReservationService books, edits and checks out room stays. Every write runs in one
// transaction that holds the room row lock for its whole duration.
type ReservationService struct {
	store *repositories.Store
	log   *zap.SugaredLogger
}

// NewReservationService creates a new reservation service
func NewReservationService(store *repositories.Store, log *zap.SugaredLogger) *ReservationService {
	return &ReservationService{store: store, log: log}
}

// CheckAvailability reports whether [checkIn, checkOut] collides with an Active reservation
// of the room. true means a conflict exists.
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		return false, err
	}

	if _, err := s.store.Rooms.GetByID(ctx, roomID); err != nil {
		return false, storeError("load room", "room not found", err)
	}

	count, err := s.store.Reservations.CountConflicts(ctx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return false, storeError("check availability", "", err)
	}
	return count > 0, nil
}

// CreateReservation books a room for an existing or a new guest and marks the room Occupied.
func (s *ReservationService) CreateReservation(ctx context.Context, input *CreateReservationInput) (uint, error) {
	if err := validateCreateReservation(input); err != nil {
		return 0, err
	}

	checkIn, checkOut := domain.Day(input.CheckIn), domain.Day(input.CheckOut)
	var reservationID uint

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		room, err := tx.Rooms.GetByIDForUpdate(ctx, input.RoomID)
		if err != nil {
			return storeError("load room", "room not found", err)
		}
		if room.Status == domain.RoomMaintenance {
			return domain.NewConflictError(fmt.Sprintf("room %s is under maintenance", room.RoomNumber))
		}
		if input.NumberOfGuests > room.MaxGuests {
			return domain.NewValidationError(fmt.Sprintf("room %s accepts at most %d guests", room.RoomNumber, room.MaxGuests))
		}

		conflicts, err := tx.Reservations.CountConflicts(ctx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return storeError("check availability", "", err)
		}
		if conflicts > 0 {
			return domain.NewConflictError(fmt.Sprintf("room %s is already booked for the selected dates", room.RoomNumber))
		}

		guestID, err := resolveGuest(ctx, tx, input)
		if err != nil {
			return err
		}

		reservation := &models.Reservation{
			RoomID:             room.ID,
			GuestID:            guestID,
			CheckInDate:        checkIn,
			CheckOutDate:       checkOut,
			NumberOfGuests:     input.NumberOfGuests,
			StaffNotes:         trimOptional(input.StaffNotes),
			Status:             domain.ReservationActive,
			CreatedByManagerID: input.ManagerID,
		}
		if err := tx.Reservations.Create(ctx, reservation); err != nil {
			return storeError("create reservation", "", err)
		}

		if err := tx.Rooms.UpdateStatus(ctx, room.ID, domain.RoomOccupied); err != nil {
			return storeError("update room status", "", err)
		}

		reservationID = reservation.ID
		return nil
	})
	if err != nil {
		return 0, storeError("create reservation", "", err)
	}

	s.log.Infow("reservation created",
		"reservation_id", reservationID,
		"room_id", input.RoomID,
		"check_in", checkIn.Format(domain.DateLayout),
		"check_out", checkOut.Format(domain.DateLayout),
		"manager_id", input.ManagerID,
	)
	return reservationID, nil
}

func validateCreateReservation(input *CreateReservationInput) error {
	if input == nil || input.RoomID == 0 {
		return domain.NewValidationError("room is required")
	}
	if err := domain.ValidateStay(input.CheckIn, input.CheckOut); err != nil {
		return err
	}
	if input.NumberOfGuests < 1 {
		return domain.NewValidationError("number of guests must be at least 1")
	}
	if input.ManagerID == 0 {
		return domain.NewValidationError("creating manager is required")
	}

	switch {
	case input.GuestID != nil && input.NewGuest != nil:
		return domain.NewValidationError("choose either an existing guest or a new guest")
	case input.GuestID != nil:
		if *input.GuestID == 0 {
			return domain.NewValidationError("guest is required")
		}
	case input.NewGuest != nil:
		if strings.TrimSpace(input.NewGuest.FullName) == "" || strings.TrimSpace(input.NewGuest.PhoneNumber) == "" {
			return domain.NewValidationError("guest name and phone number are required")
		}
	default:
		return domain.NewValidationError("guest is required")
	}
	return nil
}

func resolveGuest(ctx context.Context, tx *repositories.Store, input *CreateReservationInput) (uint, error) {
	if input.GuestID != nil {
		guest, err := tx.Guests.GetByID(ctx, *input.GuestID)
		if err != nil {
			return 0, storeError("load guest", "guest not found", err)
		}
		return guest.ID, nil
	}

	guest := &models.Guest{
		FullName:    strings.TrimSpace(input.NewGuest.FullName),
		PhoneNumber: strings.TrimSpace(input.NewGuest.PhoneNumber),
		Email:       trimOptional(input.NewGuest.Email),
		Gender:      trimOptional(input.NewGuest.Gender),
	}
	if err := tx.Guests.Create(ctx, guest); err != nil {
		return 0, storeError("create guest", "", err)
	}
	return guest.ID, nil
}

// UpdateReservation overwrites dates, party size and notes of an Active reservation.
// The new dates are checked against the room's other Active reservations.
func (s *ReservationService) UpdateReservation(ctx context.Context, id uint, input *UpdateReservationInput) error {
	if input == nil {
		return domain.NewValidationError("reservation details are required")
	}
	if err := domain.ValidateStay(input.CheckIn, input.CheckOut); err != nil {
		return err
	}
	if input.NumberOfGuests < 1 {
		return domain.NewValidationError("number of guests must be at least 1")
	}

	checkIn, checkOut := domain.Day(input.CheckIn), domain.Day(input.CheckOut)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		// The room is locked before the reservation, the same order booking and checkout use.
		// A reservation never changes room, so its room id can be read without a lock.
		current, err := tx.Reservations.GetByID(ctx, id)
		if err != nil {
			return storeError("load reservation", "reservation not found", err)
		}
		room, err := tx.Rooms.GetByIDForUpdate(ctx, current.RoomID)
		if err != nil {
			return storeError("load room", "room not found", err)
		}

		// Locking reads from here on see stays committed while we waited for the room
		reservation, err := tx.Reservations.GetByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("load reservation", "reservation not found", err)
		}
		if reservation.Status != domain.ReservationActive {
			return domain.NewConflictError("only active reservations can be edited")
		}
		if input.NumberOfGuests > room.MaxGuests {
			return domain.NewValidationError(fmt.Sprintf("room %s accepts at most %d guests", room.RoomNumber, room.MaxGuests))
		}

		conflicts, err := tx.Reservations.CountConflictsForUpdate(ctx, room.ID, checkIn, checkOut, reservation.ID)
		if err != nil {
			return storeError("check availability", "", err)
		}
		if conflicts > 0 {
			return domain.NewConflictError(fmt.Sprintf("room %s is already booked for the selected dates", room.RoomNumber))
		}

		reservation.CheckInDate = checkIn
		reservation.CheckOutDate = checkOut
		reservation.NumberOfGuests = input.NumberOfGuests
		reservation.StaffNotes = trimOptional(input.StaffNotes)
		if err := tx.Reservations.UpdateStay(ctx, reservation); err != nil {
			return storeError("update reservation", "", err)
		}
		return nil
	})
	if err != nil {
		return storeError("update reservation", "", err)
	}

	s.log.Infow("reservation updated", "reservation_id", id)
	return nil
}

// CheckoutReservation checks out the room's current stay, the Active reservation with the
// earliest check-in. The room turns Available once no Active reservation is left. A room
// without an Active reservation is a successful no-op and 0 is returned.
func (s *ReservationService) CheckoutReservation(ctx context.Context, roomID uint) (uint, error) {
	var checkedOut uint

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		room, err := tx.Rooms.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return storeError("load room", "room not found", err)
		}

		active, err := tx.Reservations.ListActiveByRoom(ctx, room.ID)
		if err != nil {
			return storeError("load reservations", "", err)
		}

		if len(active) == 0 {
			if room.Status == domain.RoomOccupied {
				return storeError("update room status", "", tx.Rooms.UpdateStatus(ctx, room.ID, domain.RoomAvailable))
			}
			return nil
		}

		current := active[0]
		if err := tx.Reservations.UpdateStatus(ctx, current.ID, domain.ReservationCheckedOut); err != nil {
			return storeError("check out reservation", "", err)
		}
		if len(active) == 1 {
			if err := tx.Rooms.UpdateStatus(ctx, room.ID, domain.RoomAvailable); err != nil {
				return storeError("update room status", "", err)
			}
		}

		checkedOut = current.ID
		return nil
	})
	if err != nil {
		return 0, storeError("check out", "", err)
	}

	if checkedOut == 0 {
		s.log.Infow("checkout skipped, no active reservation", "room_id", roomID)
	} else {
		s.log.Infow("reservation checked out", "reservation_id", checkedOut, "room_id", roomID)
	}
	return checkedOut, nil
}

// ListActiveReservations lists Active reservations joined with room and guest
func (s *ReservationService) ListActiveReservations(ctx context.Context) ([]*models.ReservationDetail, error) {
	details, err := s.store.Reservations.ListActiveDetails(ctx)
	if err != nil {
		return nil, storeError("list reservations", "", err)
	}
	return details, nil
}

// GetRoomReservation returns the room's current Active reservation joined with its guest
func (s *ReservationService) GetRoomReservation(ctx context.Context, roomID uint) (*models.ReservationDetail, error) {
	if _, err := s.store.Rooms.GetByID(ctx, roomID); err != nil {
		return nil, storeError("load room", "room not found", err)
	}
	detail, err := s.store.Reservations.GetActiveDetailByRoom(ctx, roomID)
	if err != nil {
		return nil, storeError("load reservation", "room has no active reservation", err)
	}
	return detail, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
