package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LastMessage is the denormalized snapshot of the most recent message,
// embedded on Conversation for list views. It is a cache, not the
// source of truth: it is written after the message insert without a
// transaction, so it may lag behind the message log.
type LastMessage struct {
	Text     *string    `gorm:"size:2000" json:"text,omitempty"`
	SenderID *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`
	SentAt   *time.Time `json:"sent_at,omitempty"`
	IsRead   bool       `gorm:"default:false" json:"is_read"`
}

// Conversation is a durable two-party thread, optionally scoped to a
// horse listing. The participant pair is stored canonically ordered
// (lexicographically smaller uuid first) so that lookup by the pair is
// order-independent with a single indexed equality match.
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ParticipantOne uuid.UUID  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"-"`
	ParticipantTwo uuid.UUID  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"-"`
	HorseID        *uuid.UUID `gorm:"type:uuid;index" json:"horse_id,omitempty"`

	LastMessage LastMessage `gorm:"embedded;embeddedPrefix:last_message_" json:"last_message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// CanonicalPair orders two user ids into the storage order used by
// Conversation. Equality of participant sets reduces to equality of
// the ordered pair.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantOne == userID || c.ParticipantTwo == userID
}

// OtherParticipant returns the peer of the given user. The boolean is
// false when the user is not a participant at all.
func (c *Conversation) OtherParticipant(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case c.ParticipantOne:
		return c.ParticipantTwo, true
	case c.ParticipantTwo:
		return c.ParticipantOne, true
	}
	return uuid.Nil, false
}

// Participants returns both participant ids.
func (c *Conversation) Participants() []uuid.UUID {
	return []uuid.UUID{c.ParticipantOne, c.ParticipantTwo}
}
