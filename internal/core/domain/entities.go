package domain

import (
	"fmt"
	"time"
)

// RoomType represents the category of a room
type RoomType string

const (
	RoomStandard RoomType = "Standard"
	RoomDeluxe   RoomType = "Deluxe"
	RoomSuite    RoomType = "Suite"
)

// Valid reports whether t is a known room type
func (t RoomType) Valid() bool {
	switch t {
	case RoomStandard, RoomDeluxe, RoomSuite:
		return true
	}
	return false
}

// RoomStatus represents the occupancy state of a room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Valid reports whether s is a known room status
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationActive     ReservationStatus = "Active"
	ReservationCheckedOut ReservationStatus = "CheckedOut"
	ReservationCancelled  ReservationStatus = "Cancelled"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s is required", field))
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return Day(t), nil
}

// ValidateStay checks that a stay interval is well formed (check-in strictly before check-out).
func ValidateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return NewValidationError("check-in and check-out dates are required")
	}
	if !Day(checkIn).Before(Day(checkOut)) {
		return NewValidationError("check-out date must be after check-in date")
	}
	return nil
}

// Overlaps is the booking conflict predicate. Boundaries are inclusive on both ends,
// so a stay ending on the day another one starts counts as overlapping.
func Overlaps(existingIn, existingOut, checkIn, checkOut time.Time) bool {
	return !Day(existingIn).After(Day(checkOut)) && !Day(existingOut).Before(Day(checkIn))
}

// Nights returns the number of nights between two calendar dates
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
}
