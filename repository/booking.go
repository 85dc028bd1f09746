package repository

import (
	"context"
	"time"

	apperrors "script9/errors"
	"script9/models"
	"script9/types"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, translate(err, "booking")
	}
	return &booking, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(booking).Error, "booking")
}

// UpdateStatus moves a booking from one status to another. The update only
// applies while the row still holds from, so concurrent transitions cannot both win.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return translate(res.Error, "booking")
	}
	if res.RowsAffected == 0 {
		return apperrors.BadRequest(apperrors.ErrCodeInvalidTransition, "booking status changed concurrently")
	}
	return nil
}

// HasOverlap reports whether a pending or confirmed booking of the property intersects [start, end).
func (r *BookingRepository) HasOverlap(ctx context.Context, propertyID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "booking")
	}
	return count > 0, nil
}

func applyBookingFilter(q *gorm.DB, f types.BookingFilter) *gorm.DB {
	if f.ParticipantID != "" {
		q = q.Where("(guest_id = ? OR host_id = ?)", f.ParticipantID, f.ParticipantID)
	}
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.HostID != "" {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.PropertyID != "" {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time <= ?", *f.To)
	}
	return q
}

func (r *BookingRepository) Search(ctx context.Context, f types.BookingFilter, page types.Page) ([]models.Booking, int64, error) {
	page = page.Normalize()
	q := applyBookingFilter(r.db.WithContext(ctx).Model(&models.Booking{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "bookings")
	}

	var bookings []models.Booking
	err := q.Order("start_time DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, translate(err, "bookings")
	}
	return bookings, total, nil
}

type bookingStatsRow struct {
	Total     int64
	Pending   int64
	Confirmed int64
	Completed int64
	Cancelled int64
	Revenue   float64
}

func (r *BookingRepository) Stats(ctx context.Context, f types.BookingFilter) (types.BookingStats, error) {
	var row bookingStatsRow
	q := applyBookingFilter(r.db.WithContext(ctx).Model(&models.Booking{}), f)
	err := q.Select(`COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
		COUNT(*) FILTER (WHERE status = 'completed') AS completed,
		COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
		COALESCE(SUM(total_price) FILTER (WHERE status IN ('confirmed', 'completed')), 0) AS revenue`).
		Scan(&row).Error
	if err != nil {
		return types.BookingStats{}, translate(err, "booking stats")
	}

	return types.BookingStats{
		Total:     row.Total,
		Active:    row.Pending + row.Confirmed,
		Pending:   row.Pending,
		Confirmed: row.Confirmed,
		Completed: row.Completed,
		Cancelled: row.Cancelled,
		Revenue:   row.Revenue,
	}, nil
}

// Upcoming returns active bookings starting after now, soonest first.
func (r *BookingRepository) Upcoming(ctx context.Context, f types.BookingFilter, now time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := applyBookingFilter(r.db.WithContext(ctx).Model(&models.Booking{}), f).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("start_time > ?", now).
		Order("start_time ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings")
	}
	return bookings, nil
}

// FindEndedConfirmed lists confirmed bookings whose slot ended before now.
func (r *BookingRepository) FindEndedConfirmed(ctx context.Context, now time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", models.BookingStatusConfirmed, now).
		Order("end_time ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings")
	}
	return bookings, nil
}
