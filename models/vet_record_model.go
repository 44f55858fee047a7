package models

import (
	"time"

	"github.com/google/uuid"
)

type Vaccine struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VetRecordID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	AppliedAt   time.Time  `gorm:"not null" json:"applied_at"`
	NextDueAt   *time.Time `gorm:"index" json:"next_due_at,omitempty"`
	BatchNumber *string    `gorm:"size:100" json:"batch_number,omitempty"`
}

type VetCertificate struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VetRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	URL         string    `gorm:"size:255;not null" json:"url"`
	Title       *string   `gorm:"size:255" json:"title,omitempty"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

type VetRecord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HorseID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"horse_id"`
	VetID        *uuid.UUID `gorm:"type:uuid" json:"vet_id,omitempty"`
	ReviewDate   time.Time  `gorm:"not null" json:"review_date"`
	HealthStatus string     `gorm:"size:255;not null" json:"health_status"`

	Certificates []VetCertificate `json:"certificates"`
	Vaccines     []Vaccine        `json:"vaccines"`

	ValidationStatus string     `gorm:"size:20;not null;default:'pending';index" json:"validation_status"`
	ValidatedBy      *uuid.UUID `gorm:"type:uuid" json:"validated_by,omitempty"`
	ValidatedAt      *time.Time `json:"validated_at,omitempty"`
	RejectionReason  *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`

	Horse Horse `gorm:"foreignkey:HorseID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
