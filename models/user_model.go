package models

import (
	"time"

	"github.com/google/uuid"
)

// SellerProfile is embedded on User. It only carries data for users
// with the "seller" role; admins keep the zero value.
type SellerProfile struct {
	IdentityDocument   *string    `gorm:"size:255" json:"identity_document,omitempty"`
	SelfieURL          *string    `gorm:"size:255" json:"selfie_url,omitempty"`
	VerificationStatus string     `gorm:"size:20;default:'pending'" json:"verification_status"`
	VerificationMethod *string    `gorm:"size:20" json:"verification_method,omitempty"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	VerifiedBy         *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	RejectionReason    *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	IsVerifiedBadge    bool       `gorm:"default:false" json:"is_verified_badge"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'seller'" json:"role"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`

	IsEmailVerified        bool    `gorm:"default:false" json:"is_email_verified"`
	IsPhoneVerified        bool    `gorm:"default:false" json:"is_phone_verified"`
	EmailVerificationToken *string `gorm:"size:255" json:"-"`
	ProfilePictureURL      *string `gorm:"size:255" json:"profile_picture_url,omitempty"`

	SellerProfile SellerProfile `gorm:"embedded;embeddedPrefix:seller_" json:"seller_profile"`

	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the participant shape embedded in conversation and
// message payloads.
type UserSummary struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	IsVerifiedBadge   bool      `json:"is_verified_badge"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:                u.ID,
		FullName:          u.FullName,
		ProfilePictureURL: u.ProfilePictureURL,
		IsVerifiedBadge:   u.SellerProfile.IsVerifiedBadge,
	}
}
