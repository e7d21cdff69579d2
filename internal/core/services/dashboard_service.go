package services

import (
	"context"
	"errors"
	"math"
	"time"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dashboard time filters
const (
	FilterToday      = "today"
	Filter7Days      = "7days"
	Filter30Days     = "30days"
	defaultTrendDays = 7
)

// DashboardService computes the front desk statistics
type DashboardService struct {
	store *repositories.Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *repositories.Store, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{store: store, log: log, now: time.Now}
}

// WithClock replaces the time source, used by tests and the snapshot job
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// TrendBucket is the number of reservations created on one day
type TrendBucket struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DashboardStats represents dashboard data
type DashboardStats struct {
	Filter          string        `json:"filter"`
	TotalRooms      int64         `json:"total_rooms"`
	OccupiedRooms   int64         `json:"occupied_rooms"`
	OccupancyRate   int           `json:"occupancy_rate"`
	OccupancyChange *int          `json:"occupancy_change"`
	TodayCheckIns   int64         `json:"today_check_ins"`
	CheckInsChange  int64         `json:"check_ins_change"`
	TodayCheckOuts  int64         `json:"today_check_outs"`
	CheckOutsChange int64         `json:"check_outs_change"`
	BookingTrends   []TrendBucket `json:"booking_trends"`
	TotalBookings   int64         `json:"total_bookings"`
	BookingsChange  int           `json:"bookings_change"`
}

// TrendDays maps a dashboard filter to its window length. Unknown filters fall back to 7 days.
func TrendDays(filter string) int {
	switch filter {
	case FilterToday:
		return 1
	case Filter30Days:
		return 30
	}
	return defaultTrendDays
}

// OccupancyRate is occupied/total as a rounded percentage, 0 without rooms
func OccupancyRate(occupied, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// PeriodChange is the rounded percent change from previous to current. A previous count of
// zero is treated as one so a first booking reads as growth instead of a division by zero.
func PeriodChange(current, previous int64) int {
	if previous == 0 {
		previous = 1
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// GetDashboardStats returns occupancy, today's movements and the booking trend for filter
func (s *DashboardService) GetDashboardStats(ctx context.Context, filter string) (*DashboardStats, error) {
	days := TrendDays(filter)
	switch filter {
	case FilterToday, Filter7Days, Filter30Days:
	default:
		filter = Filter7Days
	}

	today := domain.Day(s.now().UTC())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	stats := &DashboardStats{Filter: filter}

	var err error
	if stats.TotalRooms, err = s.store.Rooms.Count(ctx); err != nil {
		return nil, storeError("count rooms", "", err)
	}
	if stats.OccupiedRooms, err = s.store.Rooms.CountByStatus(ctx, domain.RoomOccupied); err != nil {
		return nil, storeError("count rooms", "", err)
	}
	stats.OccupancyRate = OccupancyRate(stats.OccupiedRooms, stats.TotalRooms)

	snapshot, err := s.store.Snapshots.LatestBefore(ctx, today)
	switch {
	case err == nil:
		change := stats.OccupancyRate - snapshot.Rate
		stats.OccupancyChange = &change
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeError("load occupancy snapshot", "", err)
	}

	active := []domain.ReservationStatus{domain.ReservationActive}
	settled := []domain.ReservationStatus{domain.ReservationActive, domain.ReservationCheckedOut}

	if stats.TodayCheckIns, err = s.store.Reservations.CountCheckInsBetween(ctx, today, tomorrow, active...); err != nil {
		return nil, storeError("count check-ins", "", err)
	}
	if stats.TodayCheckOuts, err = s.store.Reservations.CountCheckOutsBetween(ctx, today, tomorrow, active...); err != nil {
		return nil, storeError("count check-outs", "", err)
	}
	prevCheckIns, err := s.store.Reservations.CountCheckInsBetween(ctx, yesterday, today, settled...)
	if err != nil {
		return nil, storeError("count check-ins", "", err)
	}
	prevCheckOuts, err := s.store.Reservations.CountCheckOutsBetween(ctx, yesterday, today, settled...)
	if err != nil {
		return nil, storeError("count check-outs", "", err)
	}
	stats.CheckInsChange = stats.TodayCheckIns - prevCheckIns
	stats.CheckOutsChange = stats.TodayCheckOuts - prevCheckOuts

	from := tomorrow.AddDate(0, 0, -days)
	created, err := s.store.Reservations.CreatedTimesBetween(ctx, from, tomorrow)
	if err != nil {
		return nil, storeError("load booking trend", "", err)
	}
	stats.BookingTrends = BucketByDay(created, from, days)
	for _, b := range stats.BookingTrends {
		stats.TotalBookings += b.Count
	}

	previous, err := s.store.Reservations.CountCreatedBetween(ctx, from.AddDate(0, 0, -days), from)
	if err != nil {
		return nil, storeError("count bookings", "", err)
	}
	stats.BookingsChange = PeriodChange(stats.TotalBookings, previous)

	return stats, nil
}

// BucketByDay counts times per calendar day (UTC) over days consecutive days starting at
// from. Every day gets a bucket, in chronological order; times outside the window are dropped.
func BucketByDay(times []time.Time, from time.Time, days int) []TrendBucket {
	from = domain.Day(from)
	buckets := make([]TrendBucket, days)
	for i := range buckets {
		buckets[i].Date = from.AddDate(0, 0, i).Format(domain.DateLayout)
	}
	for _, t := range times {
		idx := int(domain.Day(t.UTC()).Sub(from).Hours() / 24)
		if idx < 0 || idx >= days {
			continue
		}
		buckets[idx].Count++
	}
	return buckets
}

// RecordOccupancySnapshot stores today's occupancy. The nightly job calls it so tomorrow's
// dashboard can report a real occupancy change.
func (s *DashboardService) RecordOccupancySnapshot(ctx context.Context) (*models.OccupancySnapshot, error) {
	total, err := s.store.Rooms.Count(ctx)
	if err != nil {
		return nil, storeError("count rooms", "", err)
	}
	occupied, err := s.store.Rooms.CountByStatus(ctx, domain.RoomOccupied)
	if err != nil {
		return nil, storeError("count rooms", "", err)
	}

	snapshot := &models.OccupancySnapshot{
		Day:           domain.Day(s.now().UTC()),
		TotalRooms:    total,
		OccupiedRooms: occupied,
		Rate:          OccupancyRate(occupied, total),
	}
	if err := s.store.Snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, storeError("save occupancy snapshot", "", err)
	}

	s.log.Infow("occupancy snapshot recorded",
		"day", snapshot.Day.Format(domain.DateLayout),
		"rate", snapshot.Rate,
		"occupied", occupied,
		"total", total,
	)
	return snapshot, nil
}
