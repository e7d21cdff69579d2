package services

import (
	"time"

	"hotel-desk/internal/core/domain"
)

// Input DTOs. Dates are calendar dates; services normalize them to UTC midnight.

// NewGuestInput describes a guest registered together with a booking
type NewGuestInput struct {
	FullName    string
	PhoneNumber string
	Email       *string
	Gender      *string
}

// CreateReservationInput for booking a room. Exactly one of GuestID and NewGuest is set.
type CreateReservationInput struct {
	RoomID         uint
	GuestID        *uint
	NewGuest       *NewGuestInput
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	StaffNotes     *string
	ManagerID      uint
}

// UpdateReservationInput overwrites the mutable fields of an Active reservation
type UpdateReservationInput struct {
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	StaffNotes     *string
}

// AddRoomsInput generates Count rooms numbered from StartNumber
type AddRoomsInput struct {
	StartNumber   string
	Count         int
	FloorNumber   int
	Type          domain.RoomType
	PricePerNight float64
	MaxGuests     int
}

// RoomInput describes one room of an explicit room list
type RoomInput struct {
	RoomNumber    string
	FloorNumber   int
	Type          domain.RoomType
	PricePerNight float64
	MaxGuests     int
}

// UpdateGuestInput overwrites a guest's contact fields
type UpdateGuestInput struct {
	FullName    string
	PhoneNumber string
	Email       *string
}

// CreateManagerInput for opening a staff account
type CreateManagerInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// LoginInput represents login input
type LoginInput struct {
	Email    string
	Password string
}
