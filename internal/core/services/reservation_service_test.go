package services

import (
	"context"
	"encoding/json"
	"testing"

	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGuestBooking books a March 2025 stay for a guest registered on the spot
func newGuestBooking(roomID, managerID uint, name string, in, out int) *CreateReservationInput {
	return &CreateReservationInput{
		RoomID:         roomID,
		NewGuest:       &NewGuestInput{FullName: name, PhoneNumber: "555-0199"},
		CheckIn:        date(2025, 3, in),
		CheckOut:       date(2025, 3, out),
		NumberOfGuests: 1,
		ManagerID:      managerID,
	}
}

func TestCreateReservation_BookingScenario(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleManager)
	room := mustRoom(t, store, "101", 2)

	id, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, domain.RoomOccupied, roomStatus(t, store, room.ID))

	// overlapping stay
	_, err = svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Bob", 2, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// check-in on the day the first stay checks out is a conflict too
	_, err = svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Cy", 3, 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// rejected bookings leave no guest behind
	guests, total, err := store.Guests.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Ada", guests[0].FullName)

	reservation, err := store.Reservations.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationActive, reservation.Status)
	assert.Equal(t, manager.ID, reservation.CreatedByManagerID)
}

func TestCreateReservation_StartsDayAfterCheckout(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)

	_, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Bob", 4, 6))
	assert.NoError(t, err)
}

func TestCheckoutReservation_ThenRebook(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)

	id, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)

	checkedOut, err := svc.CheckoutReservation(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, id, checkedOut)
	assert.Equal(t, domain.ReservationCheckedOut, reservationStatus(t, store, id))
	assert.Equal(t, domain.RoomAvailable, roomStatus(t, store, room.ID))

	again, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)
	assert.NotEqual(t, id, again)
	assert.Equal(t, domain.RoomOccupied, roomStatus(t, store, room.ID))
}

func TestCheckoutReservation_NoActiveIsNoop(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)

	id, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)
	_, err = svc.CheckoutReservation(ctx, room.ID)
	require.NoError(t, err)

	before, err := store.Reservations.GetByID(ctx, id)
	require.NoError(t, err)

	checkedOut, err := svc.CheckoutReservation(ctx, room.ID)
	require.NoError(t, err)
	assert.Zero(t, checkedOut)

	after, err := store.Reservations.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, domain.RoomAvailable, roomStatus(t, store, room.ID))
}

func TestCheckoutReservation_KeepsRoomOccupiedWhileStaysRemain(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)

	later, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Bob", 10, 12))
	require.NoError(t, err)
	first, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)

	checkedOut, err := svc.CheckoutReservation(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, first, checkedOut)
	assert.Equal(t, domain.ReservationActive, reservationStatus(t, store, later))
	assert.Equal(t, domain.RoomOccupied, roomStatus(t, store, room.ID))

	checkedOut, err = svc.CheckoutReservation(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, later, checkedOut)
	assert.Equal(t, domain.RoomAvailable, roomStatus(t, store, room.ID))
}

func TestCheckoutReservation_UnknownRoom(t *testing.T) {
	svc := NewReservationService(setupTestStore(t), logger.Nop())

	_, err := svc.CheckoutReservation(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateReservation_Validation(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)
	guest := mustGuest(t, store, "Ada")

	valid := func() *CreateReservationInput {
		return &CreateReservationInput{
			RoomID:         room.ID,
			GuestID:        uintPtr(guest.ID),
			CheckIn:        date(2025, 3, 1),
			CheckOut:       date(2025, 3, 3),
			NumberOfGuests: 2,
			ManagerID:      manager.ID,
		}
	}

	tests := []struct {
		name   string
		mutate func(in *CreateReservationInput)
		kind   error
	}{
		{"check-out before check-in", func(in *CreateReservationInput) { in.CheckOut = date(2025, 2, 27) }, domain.ErrValidation},
		{"same day stay", func(in *CreateReservationInput) { in.CheckOut = in.CheckIn }, domain.ErrValidation},
		{"no guest", func(in *CreateReservationInput) { in.GuestID = nil }, domain.ErrValidation},
		{"both guest forms", func(in *CreateReservationInput) {
			in.NewGuest = &NewGuestInput{FullName: "Bob", PhoneNumber: "1"}
		}, domain.ErrValidation},
		{"new guest without phone", func(in *CreateReservationInput) {
			in.GuestID = nil
			in.NewGuest = &NewGuestInput{FullName: "Bob"}
		}, domain.ErrValidation},
		{"zero party", func(in *CreateReservationInput) { in.NumberOfGuests = 0 }, domain.ErrValidation},
		{"party over capacity", func(in *CreateReservationInput) { in.NumberOfGuests = 3 }, domain.ErrValidation},
		{"missing manager", func(in *CreateReservationInput) { in.ManagerID = 0 }, domain.ErrValidation},
		{"unknown room", func(in *CreateReservationInput) { in.RoomID = 999 }, domain.ErrNotFound},
		{"unknown guest", func(in *CreateReservationInput) { in.GuestID = uintPtr(999) }, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(in)
			_, err := svc.CreateReservation(ctx, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	assert.Equal(t, domain.RoomAvailable, roomStatus(t, store, room.ID))
}

func TestCreateReservation_MaintenanceRoom(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)
	require.NoError(t, store.Rooms.UpdateStatus(ctx, room.ID, domain.RoomMaintenance))

	_, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.RoomMaintenance, roomStatus(t, store, room.ID))
}

func TestCreateReservation_ExistingGuestWithNotes(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)
	guest := mustGuest(t, store, "Ada")

	id, err := svc.CreateReservation(ctx, &CreateReservationInput{
		RoomID:         room.ID,
		GuestID:        uintPtr(guest.ID),
		CheckIn:        date(2025, 3, 1),
		CheckOut:       date(2025, 3, 3),
		NumberOfGuests: 1,
		StaffNotes:     strPtr("  late arrival  "),
		ManagerID:      manager.ID,
	})
	require.NoError(t, err)

	detail, err := svc.GetRoomReservation(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, id, detail.ID)
	assert.Equal(t, "Ada", detail.GuestName)
	assert.Equal(t, "101", detail.RoomNumber)
	require.NotNil(t, detail.StaffNotes)
	assert.Equal(t, "late arrival", *detail.StaffNotes)
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 2)

	_, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 5, 8))
	require.NoError(t, err)

	tests := []struct {
		name     string
		in, out  int
		conflict bool
	}{
		{"before", 1, 4, false},
		{"ends on check-in", 1, 5, true},
		{"inside", 6, 7, true},
		{"starts on check-out", 8, 10, true},
		{"after", 9, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := svc.CheckAvailability(ctx, room.ID, date(2025, 3, tt.in), date(2025, 3, tt.out))
			require.NoError(t, err)
			assert.Equal(t, tt.conflict, conflict)
		})
	}

	_, err = svc.CheckAvailability(ctx, 999, date(2025, 3, 1), date(2025, 3, 2))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	room := mustRoom(t, store, "101", 3)

	first, err := svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, newGuestBooking(room.ID, manager.ID, "Bob", 10, 12))
	require.NoError(t, err)

	t.Run("extends own stay", func(t *testing.T) {
		err := svc.UpdateReservation(ctx, first, &UpdateReservationInput{
			CheckIn:        date(2025, 3, 1),
			CheckOut:       date(2025, 3, 5),
			NumberOfGuests: 3,
		})
		require.NoError(t, err)

		reservation, err := store.Reservations.GetByID(ctx, first)
		require.NoError(t, err)
		assert.True(t, date(2025, 3, 5).Equal(reservation.CheckOutDate.UTC()))
		assert.Equal(t, 3, reservation.NumberOfGuests)
	})

	t.Run("runs into another stay", func(t *testing.T) {
		err := svc.UpdateReservation(ctx, first, &UpdateReservationInput{
			CheckIn:        date(2025, 3, 1),
			CheckOut:       date(2025, 3, 10),
			NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		err := svc.UpdateReservation(ctx, 999, &UpdateReservationInput{
			CheckIn:        date(2025, 3, 1),
			CheckOut:       date(2025, 3, 2),
			NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("checked out reservation", func(t *testing.T) {
		_, err := svc.CheckoutReservation(ctx, room.ID)
		require.NoError(t, err)

		err = svc.UpdateReservation(ctx, first, &UpdateReservationInput{
			CheckIn:        date(2025, 3, 1),
			CheckOut:       date(2025, 3, 2),
			NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestListActiveReservations(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	svc := NewReservationService(store, logger.Nop())
	manager := mustManager(t, store, "desk@hotel.local", domain.RoleStaff)
	r101 := mustRoom(t, store, "101", 2)
	r102 := mustRoom(t, store, "102", 2)

	_, err := svc.CreateReservation(ctx, newGuestBooking(r101.ID, manager.ID, "Ada", 1, 3))
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, newGuestBooking(r102.ID, manager.ID, "Bob", 4, 6))
	require.NoError(t, err)
	_, err = svc.CheckoutReservation(ctx, r101.ID)
	require.NoError(t, err)

	details, err := svc.ListActiveReservations(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Bob", details[0].GuestName)
	assert.Equal(t, "102", details[0].RoomNumber)

	_, err = svc.GetRoomReservation(ctx, r101.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmptyListings_EncodeAsArrays(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	reservations := NewReservationService(store, logger.Nop())
	guests := NewGuestService(store, logger.Nop())
	rooms := NewRoomService(store, logger.Nop())
	ada := mustGuest(t, store, "Ada")

	listings := map[string]func() (interface{}, error){
		"active reservations": func() (interface{}, error) { return reservations.ListActiveReservations(ctx) },
		"guest history":       func() (interface{}, error) { return guests.GetGuestReservations(ctx, ada.ID) },
		"rooms":               func() (interface{}, error) { return rooms.ListRooms(ctx) },
	}

	for name, list := range listings {
		t.Run(name, func(t *testing.T) {
			items, err := list()
			require.NoError(t, err)
			encoded, err := json.Marshal(items)
			require.NoError(t, err)
			assert.JSONEq(t, "[]", string(encoded))
		})
	}
}
