package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
)

// ActorKind identifies who performed a status change. The system only
// distinguishes the patient who created the booking from staff acting on it.
type ActorKind string

const (
	ActorPatient ActorKind = "patient"
	ActorAdmin   ActorKind = "admin"
)

// AppointmentTimePending is the placeholder slot until staff assigns a real one.
const AppointmentTimePending = "Pending"

// StatusEntry is a single record in a booking's audit trail.
type StatusEntry struct {
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	UpdatedBy ActorKind     `json:"updated_by"`
}

// StatusHistory is the append-only status trail, stored as a JSONB column
// so a booking and its history are always written in a single statement.
type StatusHistory []StatusEntry

// Value implements driver.Valuer for JSONB storage
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		h = StatusHistory{}
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner
func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result StatusHistory
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*h = result
	return nil
}

// Booking represents a patient's appointment request against a doctor.
type Booking struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientName     string        `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientEmail    string        `gorm:"type:varchar(255);not null" json:"patient_email"`
	PatientPhone    string        `gorm:"type:varchar(30);not null;index" json:"patient_phone"`
	DoctorID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time     `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string        `gorm:"type:varchar(100);not null;default:'Pending'" json:"appointment_time"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string        `gorm:"type:text" json:"notes"`
	TrackingID      string        `gorm:"type:varchar(10);uniqueIndex;not null" json:"tracking_id"`
	StatusHistory   StatusHistory `gorm:"type:jsonb;not null" json:"status_history"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Snapshot-like reference: a doctor deletion never cascades to bookings.
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is awaiting staff review
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsConfirmed checks if booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsRejected checks if booking is rejected
func (b *Booking) IsRejected() bool {
	return b.Status == BookingStatusRejected
}

// AppendHistory records a status change in the audit trail.
func (b *Booking) AppendHistory(status BookingStatus, actor ActorKind, at time.Time) {
	b.StatusHistory = append(b.StatusHistory, StatusEntry{
		Status:    status,
		Timestamp: at,
		UpdatedBy: actor,
	})
}

// ApplyStatus sets the status and appends a history entry when the status
// actually changed. Every status may transition to every other status; there
// is deliberately no transition table.
func (b *Booking) ApplyStatus(status BookingStatus, actor ActorKind, at time.Time) bool {
	if b.Status == status {
		return false
	}
	b.Status = status
	b.AppendHistory(status, actor, at)
	return true
}

// AssignTime replaces the appointment time only when the new value is
// non-blank after trimming. A blank value leaves the stored slot untouched,
// it is never reset back to the pending placeholder.
func (b *Booking) AssignTime(appointmentTime string) bool {
	trimmed := strings.TrimSpace(appointmentTime)
	if trimmed == "" {
		return false
	}
	b.AppointmentTime = appointmentTime
	return true
}
