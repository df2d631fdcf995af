package repository

import (
	"context"
	"errors"

	"hospital-booking-api/internal/domain/entity"
	domainRepo "hospital-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Save(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Delete(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTrackingID(ctx context.Context, trackingID string) (*entity.Booking, error) {
	return r.findOne(ctx, "tracking_id = ?", trackingID)
}

// FindLatestByPhone returns the most recently created booking for a phone
// number. Patients often book repeatedly from the same number; tracking by
// phone alone resolves to the newest request.
func (r *bookingRepository) FindLatestByPhone(ctx context.Context, phone string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_phone = ?", phone).
		Order("created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPhoneAndTrackingID(ctx context.Context, phone, trackingID string) (*entity.Booking, error) {
	return r.findOne(ctx, "patient_phone = ? AND tracking_id = ?", phone, trackingID)
}

func (r *bookingRepository) TrackingIDTaken(ctx context.Context, trackingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Where("tracking_id = ?", trackingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	var rows []struct {
		Status entity.BookingStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *bookingRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where(query, args...).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}
