package repository

import (
	"context"

	"hospital-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository is the persistence boundary for bookings. Finders that
// return a booking always populate the doctor reference; a nil booking with
// a nil error means no match.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Save(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]entity.Booking, error)
	FindByTrackingID(ctx context.Context, trackingID string) (*entity.Booking, error)
	FindLatestByPhone(ctx context.Context, phone string) (*entity.Booking, error)
	FindByPhoneAndTrackingID(ctx context.Context, phone, trackingID string) (*entity.Booking, error)
	TrackingIDTaken(ctx context.Context, trackingID string) (bool, error)
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)
}
