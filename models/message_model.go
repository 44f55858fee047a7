package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength bounds the text of a single chat message.
const MaxMessageLength = 2000

// Message is append-only: only the read state and the soft-delete
// tombstone ever change after creation. gorm.DeletedAt keeps
// tombstoned messages out of every normal query.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Text           string    `gorm:"size:2000;not null" json:"text"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	SentAt    time.Time      `gorm:"autoCreateTime;index" json:"sent_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Sender User `gorm:"foreignkey:SenderID" json:"-"`
}
