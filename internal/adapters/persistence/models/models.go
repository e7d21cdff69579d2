package models

import (
	"time"

	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Rooms & Guests
// ============================================================

// Room represents rooms table
type Room struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	RoomNumber    string            `gorm:"size:20;uniqueIndex;not null" json:"room_number"`
	Type          domain.RoomType   `gorm:"size:20;not null" json:"type"`
	Status        domain.RoomStatus `gorm:"size:20;not null;default:'Available';index" json:"status"`
	FloorNumber   int               `gorm:"not null;index" json:"floor_number"`
	PricePerNight float64           `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	MaxGuests     int               `gorm:"not null" json:"max_guests"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Room) TableName() string {
	return "rooms"
}

// Guest represents guests table
type Guest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"size:150;not null" json:"full_name"`
	PhoneNumber string    `gorm:"size:30;not null" json:"phone_number"`
	Email       *string   `gorm:"size:150" json:"email"`
	Gender      *string   `gorm:"size:20" json:"gender"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Guest) TableName() string {
	return "guests"
}

// GuestStats is a guest row with lifetime stay totals
type GuestStats struct {
	ID           uint       `json:"id"`
	FullName     string     `json:"full_name"`
	PhoneNumber  string     `json:"phone_number"`
	Email        *string    `json:"email"`
	Gender       *string    `json:"gender"`
	CreatedAt    time.Time  `json:"created_at"`
	TotalStays   int64      `json:"total_stays"`
	TotalRevenue float64    `json:"total_revenue"`
	LastStayDate *time.Time `json:"last_stay_date"`
}

// ============================================================
// Reservations
// ============================================================

// Reservation represents reservations table.
// RoomID and GuestID carry no foreign key constraint: removing a room keeps its history.
type Reservation struct {
	ID                 uint                     `gorm:"primaryKey" json:"id"`
	RoomID             uint                     `gorm:"not null;index:idx_reservations_room_status" json:"room_id"`
	GuestID            uint                     `gorm:"not null;index" json:"guest_id"`
	CheckInDate        time.Time                `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate       time.Time                `gorm:"type:date;not null;index" json:"check_out_date"`
	NumberOfGuests     int                      `gorm:"not null;default:1" json:"number_of_guests"`
	StaffNotes         *string                  `gorm:"type:text" json:"staff_notes"`
	Status             domain.ReservationStatus `gorm:"size:20;not null;default:'Active';index:idx_reservations_room_status" json:"status"`
	CreatedAt          time.Time                `gorm:"autoCreateTime;index" json:"created_at"`
	CreatedByManagerID uint                     `gorm:"not null" json:"created_by_manager_id"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ReservationDetail is a reservation joined with its room and guest
type ReservationDetail struct {
	ID                 uint                     `json:"id"`
	RoomID             uint                     `json:"room_id"`
	GuestID            uint                     `json:"guest_id"`
	CheckInDate        time.Time                `json:"check_in_date"`
	CheckOutDate       time.Time                `json:"check_out_date"`
	NumberOfGuests     int                      `json:"number_of_guests"`
	StaffNotes         *string                  `json:"staff_notes"`
	Status             domain.ReservationStatus `json:"status"`
	CreatedAt          time.Time                `json:"created_at"`
	CreatedByManagerID uint                     `json:"created_by_manager_id"`
	RoomNumber         string                   `json:"room_number,omitempty"`
	RoomType           domain.RoomType          `json:"room_type,omitempty"`
	PricePerNight      float64                  `json:"price_per_night,omitempty"`
	GuestName          string                   `json:"guest_name,omitempty"`
	PhoneNumber        string                   `json:"phone_number,omitempty"`
	Email              *string                  `json:"email,omitempty"`
	Gender             *string                  `json:"gender,omitempty"`
}

// ============================================================
// Staff accounts
// ============================================================

// Manager represents managers table
type Manager struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"uniqueIndex;size:150;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	FullName     string      `gorm:"size:150;not null" json:"full_name"`
	Role         domain.Role `gorm:"size:40;not null;default:'STAFF'" json:"role"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt  *time.Time  `json:"last_login_at"`
}

func (Manager) TableName() string {
	return "managers"
}

// ManagerResponse DTO
type ManagerResponse struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
	LastLoginAt *time.Time  `json:"last_login_at"`
}

func (m *Manager) ToResponse() *ManagerResponse {
	return &ManagerResponse{
		ID:          m.ID,
		Email:       m.Email,
		FullName:    m.FullName,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
		LastLoginAt: m.LastLoginAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ManagerID uint       `gorm:"index;not null" json:"manager_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Reporting
// ============================================================

// OccupancySnapshot is the end-of-day occupancy recorded by the nightly job
type OccupancySnapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Day           time.Time `gorm:"type:date;uniqueIndex;not null" json:"day"`
	TotalRooms    int64     `gorm:"not null" json:"total_rooms"`
	OccupiedRooms int64     `gorm:"not null" json:"occupied_rooms"`
	Rate          int       `gorm:"not null" json:"rate"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OccupancySnapshot) TableName() string {
	return "occupancy_snapshots"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Room{},
		&Guest{},
		&Reservation{},
		&Manager{},
		&RefreshToken{},
		&OccupancySnapshot{},
	)
}
