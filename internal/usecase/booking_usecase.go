package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-booking-api/internal/converter"
	"hospital-booking-api/internal/delivery/dto"
	"hospital-booking-api/internal/delivery/http/middleware"
	"hospital-booking-api/internal/domain/entity"
	"hospital-booking-api/internal/domain/repository"
	"hospital-booking-api/internal/service"
	"hospital-booking-api/internal/tracking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrTrackingQueryRequired = errors.New("either phone number or tracking id is required")
	ErrInvalidStatus         = errors.New("invalid booking status")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

// How often creation retries after losing the tracking-code write race.
const createMaxRetries = 3

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	TrackBooking(ctx context.Context, req *dto.TrackBookingRequest) (*dto.BookingResponse, error)
	GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetBookingStats(ctx context.Context) (*dto.BookingStatsResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	doctorRepo   repository.DoctorRepository
	tracker      *tracking.Generator
	auditService service.AuditService
}

func NewBookingUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		tracker:      tracking.NewGenerator(bookingRepo.TrackingIDTaken),
		auditService: auditService,
	}
}

// CreateBooking registers a new appointment request.
//
// Flow:
// 1. Resolve the doctor; an unknown reference rejects the request
// 2. Mint a unique tracking code
// 3. Insert the booking in pending state with its initial history entry
// 4. On a tracking-code write conflict, mint a fresh code and retry
//
// History lives on the booking row, so the insert is atomic: either the
// booking, its code and its first history entry are all persisted, or
// nothing is.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	appointmentDate, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		DoctorID:        doctor.ID,
		AppointmentDate: appointmentDate,
		AppointmentTime: entity.AppointmentTimePending,
		Status:          entity.BookingStatusPending,
		Notes:           req.Notes,
	}
	booking.AppendHistory(entity.BookingStatusPending, entity.ActorPatient, now)

	for attempt := 0; ; attempt++ {
		code, err := u.tracker.Generate(ctx)
		if err != nil {
			u.log.Errorf("Failed to generate tracking code: %+v", err)
			return nil, err
		}
		booking.TrackingID = code

		err = u.bookingRepo.Create(ctx, booking)
		if err == nil {
			break
		}
		// Another request won the race for this code between the existence
		// check and the insert. The unique index caught it; mint a new code.
		if isDuplicateKeyError(err, "tracking") && attempt < createMaxRetries {
			u.log.Warnf("Tracking code %s collided on insert, retrying", code)
			continue
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	booking.Doctor = *doctor
	u.log.Infof("Booking created: id=%s, doctor=%s, tracking=%s", booking.ID, doctor.ID, booking.TrackingID)
	return converter.BookingToResponse(booking), nil
}

// UpdateBooking transitions a booking's status and optionally assigns a
// time slot. Any status may move to any other status; a history entry is
// appended only when the status actually changed.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	status := entity.BookingStatus(req.Status)
	switch status {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}

	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	oldStatus := booking.Status
	oldTime := booking.AppointmentTime

	changed := booking.ApplyStatus(status, entity.ActorAdmin, time.Now().UTC())
	booking.AssignTime(req.AppointmentTime)

	if err := u.bookingRepo.Save(ctx, booking); err != nil {
		u.log.Warnf("Failed to update booking %s: %+v", id, err)
		return nil, err
	}

	if changed || oldTime != booking.AppointmentTime {
		userID := actorFromContext(ctx)
		if err := u.auditService.LogUpdate(ctx, userID, entity.AuditActionBookingUpdate, "booking", booking.ID.String(),
			entity.JSON{"status": oldStatus, "appointment_time": oldTime},
			entity.JSON{"status": booking.Status, "appointment_time": booking.AppointmentTime},
		); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	u.log.Infof("Booking updated: id=%s, status=%s, time=%q", booking.ID, booking.Status, booking.AppointmentTime)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if err := u.bookingRepo.Delete(ctx, booking); err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", id, err)
		return err
	}

	userID := actorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, userID, entity.AuditActionBookingDelete, "booking", booking.ID.String(), converter.BookingToResponse(booking)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Booking deleted: id=%s, tracking=%s", booking.ID, booking.TrackingID)
	return nil
}

// TrackBooking is the public lookup. Identifier priority:
// both phone and code -> exact match on both; phone only -> the caller's
// most recent booking; code only -> the unique booking holding it.
func (u *bookingUsecase) TrackBooking(ctx context.Context, req *dto.TrackBookingRequest) (*dto.BookingResponse, error) {
	phone := strings.TrimSpace(req.PatientPhone)
	trackingID := strings.TrimSpace(req.TrackingID)

	var (
		booking *entity.Booking
		err     error
	)
	switch {
	case phone != "" && trackingID != "":
		booking, err = u.bookingRepo.FindByPhoneAndTrackingID(ctx, phone, trackingID)
	case phone != "":
		booking, err = u.bookingRepo.FindLatestByPhone(ctx, phone)
	case trackingID != "":
		booking, err = u.bookingRepo.FindByTrackingID(ctx, trackingID)
	default:
		return nil, ErrTrackingQueryRequired
	}

	if err != nil {
		u.log.Warnf("Failed to track booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetBookingStats(ctx context.Context) (*dto.BookingStatsResponse, error) {
	counts, err := u.bookingRepo.CountByStatus(ctx)
	if err != nil {
		u.log.Warnf("Failed to count bookings: %+v", err)
		return nil, err
	}

	stats := &dto.BookingStatsResponse{
		Pending:   counts[entity.BookingStatusPending],
		Confirmed: counts[entity.BookingStatusConfirmed],
		Rejected:  counts[entity.BookingStatusRejected],
	}
	stats.Total = stats.Pending + stats.Confirmed + stats.Rejected
	return stats, nil
}

// actorFromContext returns the authenticated admin's id, or nil for
// unauthenticated callers.
func actorFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
