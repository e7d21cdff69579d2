package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/core/domain"

	"go.uber.org/zap"
)

// MaxRoomsPerBatch caps a single addRooms call
const MaxRoomsPerBatch = 500

// RoomService manages the room inventory
type RoomService struct {
	store *repositories.Store
	log   *zap.SugaredLogger
}

// NewRoomService creates a new room service
func NewRoomService(store *repositories.Store, log *zap.SugaredLogger) *RoomService {
	return &RoomService{store: store, log: log}
}

// ListRooms lists all rooms by floor then room number
func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.store.Rooms.List(ctx)
	if err != nil {
		return nil, storeError("list rooms", "", err)
	}
	return rooms, nil
}

// GetRoom gets a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load room", "room not found", err)
	}
	return room, nil
}

// AddRooms creates Count rooms numbered sequentially from StartNumber, e.g. 301, 302, 303.
// Leading zeros of StartNumber are kept ("0901" gives "0902").
func (s *RoomService) AddRooms(ctx context.Context, input *AddRoomsInput) ([]*models.Room, error) {
	if input == nil {
		return nil, domain.NewValidationError("room details are required")
	}
	start := strings.TrimSpace(input.StartNumber)
	first, err := strconv.Atoi(start)
	if err != nil || first < 0 {
		return nil, domain.NewValidationError("start number must be a non-negative number")
	}
	if input.Count < 1 || input.Count > MaxRoomsPerBatch {
		return nil, domain.NewValidationError(fmt.Sprintf("count must be between 1 and %d", MaxRoomsPerBatch))
	}

	list := make([]*RoomInput, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		list = append(list, &RoomInput{
			RoomNumber:    fmt.Sprintf("%0*d", len(start), first+i),
			FloorNumber:   input.FloorNumber,
			Type:          input.Type,
			PricePerNight: input.PricePerNight,
			MaxGuests:     input.MaxGuests,
		})
	}
	return s.AddRoomList(ctx, list)
}

// AddRoomList creates the given rooms as Available, all or none.
func (s *RoomService) AddRoomList(ctx context.Context, list []*RoomInput) ([]*models.Room, error) {
	if len(list) == 0 {
		return nil, domain.NewValidationError("at least one room is required")
	}

	rooms := make([]*models.Room, 0, len(list))
	numbers := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, in := range list {
		if err := validateRoomInput(in); err != nil {
			return nil, err
		}
		number := strings.TrimSpace(in.RoomNumber)
		if seen[number] {
			return nil, domain.NewValidationError(fmt.Sprintf("room number %s is listed twice", number))
		}
		seen[number] = true
		numbers = append(numbers, number)
		rooms = append(rooms, &models.Room{
			RoomNumber:    number,
			Type:          in.Type,
			Status:        domain.RoomAvailable,
			FloorNumber:   in.FloorNumber,
			PricePerNight: in.PricePerNight,
			MaxGuests:     in.MaxGuests,
		})
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		taken, err := tx.Rooms.ExistingNumbers(ctx, numbers)
		if err != nil {
			return storeError("check room numbers", "", err)
		}
		if len(taken) > 0 {
			return domain.NewConflictError(fmt.Sprintf("room numbers already exist: %s", strings.Join(taken, ", ")))
		}
		if err := tx.Rooms.CreateBatch(ctx, rooms); err != nil {
			return storeError("add rooms", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError("add rooms", "", err)
	}

	s.log.Infow("rooms added", "count", len(rooms), "numbers", numbers)
	return rooms, nil
}

func validateRoomInput(in *RoomInput) error {
	if in == nil || strings.TrimSpace(in.RoomNumber) == "" {
		return domain.NewValidationError("room number is required")
	}
	if !in.Type.Valid() {
		return domain.NewValidationError("room type must be Standard, Deluxe or Suite")
	}
	if in.PricePerNight < 0 {
		return domain.NewValidationError("price per night cannot be negative")
	}
	if in.MaxGuests < 1 {
		return domain.NewValidationError("max guests must be at least 1")
	}
	return nil
}

// RemoveRooms hard deletes rooms. If any targeted room is Occupied nothing is deleted.
// Reservation history of removed rooms is kept.
func (s *RoomService) RemoveRooms(ctx context.Context, ids []uint) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, domain.NewValidationError("at least one room is required")
	}

	var deleted int64
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		// Bookings lock the room row first, so a locked room cannot turn Occupied under us
		rooms, err := tx.Rooms.ListByIDsForUpdate(ctx, ids)
		if err != nil {
			return storeError("check rooms", "", err)
		}
		for _, room := range rooms {
			if room.Status == domain.RoomOccupied {
				return domain.NewConflictError("occupied rooms cannot be removed")
			}
		}
		deleted, err = tx.Rooms.DeleteByIDs(ctx, ids)
		if err != nil {
			return storeError("remove rooms", "", err)
		}
		return nil
	})
	if err != nil {
		return 0, storeError("remove rooms", "", err)
	}

	s.log.Infow("rooms removed", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// SetRoomStatus switches a room between Available and Maintenance. Occupied is owned by the
// booking flow and refused while the room has an Active reservation.
func (s *RoomService) SetRoomStatus(ctx context.Context, id uint, status domain.RoomStatus) error {
	if status != domain.RoomAvailable && status != domain.RoomMaintenance {
		return domain.NewValidationError("status must be Available or Maintenance")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		room, err := tx.Rooms.GetByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("load room", "room not found", err)
		}
		active, err := tx.Reservations.ListActiveByRoom(ctx, room.ID)
		if err != nil {
			return storeError("load reservations", "", err)
		}
		if len(active) > 0 {
			return domain.NewConflictError(fmt.Sprintf("room %s has an active reservation", room.RoomNumber))
		}
		if room.Status == status {
			return nil
		}
		return storeError("update room status", "", tx.Rooms.UpdateStatus(ctx, room.ID, status))
	})
	if err != nil {
		return storeError("update room status", "", err)
	}

	s.log.Infow("room status updated", "room_id", id, "status", status)
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
