package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a member of the hospital's doctor roster
type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Available      *bool     `gorm:"not null;default:true" json:"available"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Specializations offered by the hospital. Creation requests are validated
// against this set.
const (
	SpecializationCardiologist  = "Cardiologist"
	SpecializationPhysician     = "Physician"
	SpecializationNeurologist   = "Neurologist"
	SpecializationPediatrician  = "Pediatrician"
	SpecializationOrthopedic    = "Orthopedic"
	SpecializationDermatologist = "Dermatologist"
	SpecializationGeneral       = "General"
)
