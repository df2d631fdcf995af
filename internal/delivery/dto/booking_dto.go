package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	PatientName     string    `json:"patient_name" validate:"required,min=2,max=255"`
	PatientEmail    string    `json:"patient_email" validate:"required,email"`
	PatientPhone    string    `json:"patient_phone" validate:"required,min=7,max=30"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	Notes           string    `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateBookingRequest transitions a booking's status and optionally assigns
// a time slot. A blank appointment_time leaves the stored slot unchanged.
type UpdateBookingRequest struct {
	Status          string `json:"status" validate:"required,oneof=pending confirmed rejected"`
	AppointmentTime string `json:"appointment_time" validate:"omitempty,max=100"`
}

// TrackBookingRequest needs at least one of the two identifiers; the usecase
// rejects an empty pair.
type TrackBookingRequest struct {
	PatientPhone string `json:"patient_phone" validate:"omitempty,max=30"`
	TrackingID   string `json:"tracking_id" validate:"omitempty,max=10"`
}

// Response DTOs

type StatusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by"`
}

type BookingResponse struct {
	ID              uuid.UUID             `json:"id"`
	PatientName     string                `json:"patient_name"`
	PatientEmail    string                `json:"patient_email"`
	PatientPhone    string                `json:"patient_phone"`
	Doctor          *DoctorResponse       `json:"doctor,omitempty"`
	AppointmentDate time.Time             `json:"appointment_date"`
	AppointmentTime string                `json:"appointment_time"`
	Status          string                `json:"status"`
	Notes           string                `json:"notes"`
	TrackingID      string                `json:"tracking_id"`
	StatusHistory   []StatusEntryResponse `json:"status_history"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type BookingStatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Rejected  int64 `json:"rejected"`
}