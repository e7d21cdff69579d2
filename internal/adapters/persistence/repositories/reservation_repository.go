package repositories

import (
	"context"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reservationRepository implements ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationDetailColumns = `r.id, r.room_id, r.guest_id, r.check_in_date, r.check_out_date,
r.number_of_guests, r.staff_notes, r.status, r.created_at, r.created_by_manager_id,
rm.room_number, rm.type AS room_type, rm.price_per_night,
g.full_name AS guest_name, g.phone_number, g.email, g.gender`

func (r *reservationRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reservations AS r").
		Select(reservationDetailColumns).
		Joins("LEFT JOIN rooms AS rm ON rm.id = r.room_id").
		Joins("LEFT JOIN guests AS g ON g.id = r.guest_id")
}

// Create creates a new reservation
func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID gets a reservation by ID
func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByIDForUpdate gets a reservation by ID and locks the row until the transaction ends
func (r *reservationRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateStay overwrites dates, party size and notes
func (r *reservationRepository) UpdateStay(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{
			"check_in_date":    reservation.CheckInDate,
			"check_out_date":   reservation.CheckOutDate,
			"number_of_guests": reservation.NumberOfGuests,
			"staff_notes":      reservation.StaffNotes,
		}).Error
}

// UpdateStatus sets the status of a reservation
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountConflicts counts Active reservations of roomID whose stay touches [checkIn, checkOut]
// inclusive at both ends. excludeID = 0 excludes nothing.
func (r *reservationRepository) CountConflicts(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	var count int64
	err := r.conflicts(ctx, roomID, checkIn, checkOut, excludeID).Count(&count).Error
	return count, err
}

// CountConflictsForUpdate is CountConflicts as a locking read. It sees stays committed after
// the transaction's snapshot was taken.
func (r *reservationRepository) CountConflictsForUpdate(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	var count int64
	err := r.conflicts(ctx, roomID, checkIn, checkOut, excludeID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Count(&count).Error
	return count, err
}

func (r *reservationRepository) conflicts(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status = ?", domain.ReservationActive).
		Where("check_in_date <= ?", domain.Day(checkOut)).
		Where("check_out_date >= ?", domain.Day(checkIn))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return query
}

// ListActiveByRoom lists Active reservations of a room, earliest check-in first
func (r *reservationRepository) ListActiveByRoom(ctx context.Context, roomID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status = ?", domain.ReservationActive).
		Order("check_in_date ASC").
		Order("id ASC").
		Find(&reservations).Error
	return reservations, err
}

// GetActiveDetailByRoom returns the room's current stay joined with room and guest
func (r *reservationRepository) GetActiveDetailByRoom(ctx context.Context, roomID uint) (*models.ReservationDetail, error) {
	var details []*models.ReservationDetail
	err := r.details(ctx).
		Where("r.room_id = ?", roomID).
		Where("r.status = ?", domain.ReservationActive).
		Order("r.check_in_date ASC").
		Order("r.id ASC").
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return details[0], nil
}

// ListActiveDetails lists Active reservations, latest check-in first
func (r *reservationRepository) ListActiveDetails(ctx context.Context) ([]*models.ReservationDetail, error) {
	details := make([]*models.ReservationDetail, 0)
	err := r.details(ctx).
		Where("r.status = ?", domain.ReservationActive).
		Order("r.check_in_date DESC").
		Order("r.id DESC").
		Scan(&details).Error
	return details, err
}

// ListDetailsByGuest lists the whole stay history of a guest, latest check-in first
func (r *reservationRepository) ListDetailsByGuest(ctx context.Context, guestID uint) ([]*models.ReservationDetail, error) {
	details := make([]*models.ReservationDetail, 0)
	err := r.details(ctx).
		Where("r.guest_id = ?", guestID).
		Order("r.check_in_date DESC").
		Order("r.id DESC").
		Scan(&details).Error
	return details, err
}

// CountCheckInsBetween counts reservations checking in within [from, to) having one of statuses
func (r *reservationRepository) CountCheckInsBetween(ctx context.Context, from, to time.Time, statuses ...domain.ReservationStatus) (int64, error) {
	return r.countDateBetween(ctx, "check_in_date", from, to, statuses)
}

// CountCheckOutsBetween counts reservations checking out within [from, to) having one of statuses
func (r *reservationRepository) CountCheckOutsBetween(ctx context.Context, from, to time.Time, statuses ...domain.ReservationStatus) (int64, error) {
	return r.countDateBetween(ctx, "check_out_date", from, to, statuses)
}

func (r *reservationRepository) countDateBetween(ctx context.Context, column string, from, to time.Time, statuses []domain.ReservationStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(column+" >= ?", from).
		Where(column+" < ?", to)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

// CreatedTimesBetween returns the creation times of reservations made within [from, to)
func (r *reservationRepository) CreatedTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	return times, err
}

// CountCreatedBetween counts reservations made within [from, to)
func (r *reservationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		Count(&count).Error
	return count, err
}
