package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Specialization string `json:"specialization" validate:"required,oneof=Cardiologist Physician Neurologist Pediatrician Orthopedic Dermatologist General"`
	Available      *bool  `json:"available" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2,max=255"`
	Specialization string `json:"specialization" validate:"omitempty,oneof=Cardiologist Physician Neurologist Pediatrician Orthopedic Dermatologist General"`
	Available      *bool  `json:"available" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Available      bool      `json:"available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
