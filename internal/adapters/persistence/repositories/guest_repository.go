package repositories

import (
	"context"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
)

// guestRepository implements GuestRepository interface
type guestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

// Create creates a new guest
func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// GetByID gets a guest by ID
func (r *guestRepository) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update overwrites the contact fields of a guest
func (r *guestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("id = ?", guest.ID).
		Updates(map[string]interface{}{
			"full_name":    guest.FullName,
			"phone_number": guest.PhoneNumber,
			"email":        guest.Email,
		}).Error
}

// List lists guests newest first with pagination
func (r *guestRepository) List(ctx context.Context, offset, limit int) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Guest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

type guestStayRow struct {
	GuestID       uint
	CheckInDate   time.Time
	CheckOutDate  time.Time
	PricePerNight float64
}

// ListWithStats lists every guest newest first with totals over their non-cancelled stays.
// Nights are counted in Go so the query stays portable between MySQL and SQLite.
func (r *guestRepository) ListWithStats(ctx context.Context) ([]*models.GuestStats, error) {
	var guests []*models.Guest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&guests).Error; err != nil {
		return nil, err
	}

	var stays []guestStayRow
	if err := r.db.WithContext(ctx).
		Table("reservations AS r").
		Select("r.guest_id, r.check_in_date, r.check_out_date, COALESCE(rm.price_per_night, 0) AS price_per_night").
		Joins("LEFT JOIN rooms AS rm ON rm.id = r.room_id").
		Where("r.status <> ?", domain.ReservationCancelled).
		Scan(&stays).Error; err != nil {
		return nil, err
	}

	byGuest := make(map[uint]*models.GuestStats, len(guests))
	result := make([]*models.GuestStats, 0, len(guests))
	for _, g := range guests {
		s := &models.GuestStats{
			ID:          g.ID,
			FullName:    g.FullName,
			PhoneNumber: g.PhoneNumber,
			Email:       g.Email,
			Gender:      g.Gender,
			CreatedAt:   g.CreatedAt,
		}
		byGuest[g.ID] = s
		result = append(result, s)
	}

	for _, stay := range stays {
		s, ok := byGuest[stay.GuestID]
		if !ok {
			continue
		}
		s.TotalStays++
		s.TotalRevenue += float64(domain.Nights(stay.CheckInDate, stay.CheckOutDate)) * stay.PricePerNight
		checkOut := domain.Day(stay.CheckOutDate)
		if s.LastStayDate == nil || checkOut.After(*s.LastStayDate) {
			s.LastStayDate = &checkOut
		}
	}

	return result, nil
}
