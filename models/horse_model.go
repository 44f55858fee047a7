package models

import (
	"time"

	"github.com/equimarket/horse_market/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HorsePhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HorseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	URL        string    `gorm:"size:255;not null" json:"url"`
	Caption    *string   `gorm:"size:255" json:"caption,omitempty"`
	IsCover    bool      `gorm:"default:false" json:"is_cover"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

type HorseVideo struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HorseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	URL         string    `gorm:"size:255;not null" json:"url"`
	EmbedURL    string    `gorm:"size:255" json:"embed_url"`
	VideoType   string    `gorm:"size:20;not null" json:"video_type"`
	Title       *string   `gorm:"size:255" json:"title,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	RecordedAt  time.Time `gorm:"not null" json:"recorded_at"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// BeforeSave derives the embeddable player URL from raw YouTube and
// Vimeo links when the client did not supply one.
func (v *HorseVideo) BeforeSave(tx *gorm.DB) error {
	if v.EmbedURL == "" && v.URL != "" {
		v.EmbedURL = utils.ToEmbedURL(v.URL)
	}
	return nil
}

type Location struct {
	Country string   `gorm:"size:100;not null" json:"country"`
	Region  string   `gorm:"size:100;not null" json:"region"`
	City    *string  `gorm:"size:100" json:"city,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type Horse struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Age        int       `gorm:"not null" json:"age"`
	Breed      string    `gorm:"size:100;not null" json:"breed"`
	Discipline string    `gorm:"size:100;not null" json:"discipline"`
	Pedigree   *string   `gorm:"type:text" json:"pedigree,omitempty"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	Price    *float64 `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	Currency string   `gorm:"size:3;default:'USD'" json:"currency"`

	Photos []HorsePhoto `json:"photos"`
	Videos []HorseVideo `json:"videos"`

	Status     string `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ViewsCount int64  `gorm:"default:0" json:"views_count"`

	Seller User `gorm:"foreignkey:SellerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HorseSummary is the listing shape embedded in conversation payloads.
type HorseSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	CoverURL *string   `json:"cover_url,omitempty"`
}

func (h *Horse) Summary() HorseSummary {
	s := HorseSummary{ID: h.ID, Name: h.Name}
	for i := range h.Photos {
		if h.Photos[i].IsCover {
			s.CoverURL = &h.Photos[i].URL
			break
		}
	}
	if s.CoverURL == nil && len(h.Photos) > 0 {
		s.CoverURL = &h.Photos[0].URL
	}
	return s
}
