package converter

import (
	"hospital-booking-api/internal/delivery/dto"
	"hospital-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	history := make([]dto.StatusEntryResponse, len(booking.StatusHistory))
	for i, entry := range booking.StatusHistory {
		history[i] = dto.StatusEntryResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp,
			UpdatedBy: string(entry.UpdatedBy),
		}
	}

	response := &dto.BookingResponse{
		ID:              booking.ID,
		PatientName:     booking.PatientName,
		PatientEmail:    booking.PatientEmail,
		PatientPhone:    booking.PatientPhone,
		AppointmentDate: booking.AppointmentDate,
		AppointmentTime: booking.AppointmentTime,
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		TrackingID:      booking.TrackingID,
		StatusHistory:   history,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	// Include doctor info if loaded
	if booking.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&booking.Doctor)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
