package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat store errors. Handlers translate these to HTTP codes, the
// websocket layer translates them to acknowledgment payloads. Both
// entry points call the same functions below, so REST and the live
// channel cannot drift apart.
var (
	ErrInvalidParticipant = errors.New("cannot start a conversation with yourself")
	ErrNotFound           = errors.New("conversation not found")
	ErrEmptyMessage       = errors.New("message text is required")
	ErrMessageTooLong     = errors.New("message text exceeds maximum length")
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// ConversationView decorates a conversation with the participant and
// listing summaries list views need.
type ConversationView struct {
	models.Conversation
	Participants []models.UserSummary `json:"participants"`
	Horse        *models.HorseSummary `json:"horse,omitempty"`
}

// MessageView decorates a message with its sender summary.
type MessageView struct {
	models.Message
	Sender models.UserSummary `json:"sender"`
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPageSize(size int) int {
	if size < 1 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// GetOrCreateConversation finds the conversation between two users,
// creating it on first contact. A horse-scoped and an unscoped
// conversation between the same pair are distinct threads. Concurrent
// first contacts may race past the lookup and create duplicates; that
// degraded case is accepted and not repaired.
func GetOrCreateConversation(requesterID, recipientID uuid.UUID, horseID *uuid.UUID) (models.Conversation, error) {
	var conversation models.Conversation

	if recipientID == uuid.Nil || requesterID == recipientID {
		return conversation, ErrInvalidParticipant
	}

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation, ErrNotFound
		}
		return conversation, err
	}

	p1, p2 := models.CanonicalPair(requesterID, recipientID)

	query := database.DB.Where("participant_one = ? AND participant_two = ?", p1, p2)
	if horseID != nil {
		query = query.Where("horse_id = ?", *horseID)
	} else {
		query = query.Where("horse_id IS NULL")
	}

	err := query.First(&conversation).Error
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return conversation, err
	}

	conversation = models.Conversation{
		ParticipantOne: p1,
		ParticipantTwo: p2,
		HorseID:        horseID,
	}
	if err := database.DB.Create(&conversation).Error; err != nil {
		return conversation, err
	}
	return conversation, nil
}

// ListConversations returns the user's conversations, most recently
// updated first, with participant and listing summaries attached.
func ListConversations(userID uuid.UUID) ([]ConversationView, error) {
	var conversations []models.Conversation
	err := database.DB.
		Where("participant_one = ? OR participant_two = ?", userID, userID).
		Order("updated_at desc").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	views := make([]ConversationView, 0, len(conversations))
	for i := range conversations {
		view := ConversationView{Conversation: conversations[i]}

		var users []models.User
		if err := database.DB.Where("id IN ?", conversations[i].Participants()).Find(&users).Error; err != nil {
			return nil, err
		}
		for j := range users {
			view.Participants = append(view.Participants, users[j].Summary())
		}

		if conversations[i].HorseID != nil {
			var horse models.Horse
			if err := database.DB.Preload("Photos").First(&horse, "id = ?", *conversations[i].HorseID).Error; err == nil {
				summary := horse.Summary()
				view.Horse = &summary
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// SendMessage appends a message to a conversation and refreshes the
// last-message snapshot. The two writes are not atomic: if the
// snapshot update fails after the insert, the list view shows stale
// data until the next successful send.
func SendMessage(conversationID, senderID uuid.UUID, text string) (models.Message, error) {
	var message models.Message

	if strings.TrimSpace(text) == "" {
		return message, ErrEmptyMessage
	}
	if len([]rune(text)) > models.MaxMessageLength {
		return message, ErrMessageTooLong
	}

	conversation, err := ConversationForParticipant(conversationID, senderID)
	if err != nil {
		return message, err
	}

	message = models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Text:           text,
		IsRead:         false,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return message, err
	}

	snapshot := map[string]interface{}{
		"last_message_text":      message.Text,
		"last_message_sender_id": message.SenderID,
		"last_message_sent_at":   message.SentAt,
		"last_message_is_read":   false,
		"updated_at":             time.Now(),
	}
	if err := database.DB.Model(&models.Conversation{}).
		Where("id = ?", conversation.ID).
		Updates(snapshot).Error; err != nil {
		log.Printf("Failed to update last_message snapshot for conversation %s: %v", conversation.ID, err)
	}

	return message, nil
}

// History returns one page of a conversation's messages in ascending
// chronological order. As a side effect every unread message authored
// by the other participant is marked read, not only the ones on the
// requested page.
func History(conversationID, requesterID uuid.UUID, page, pageSize int) ([]MessageView, error) {
	if _, err := ConversationForParticipant(conversationID, requesterID); err != nil {
		return nil, err
	}

	page = clampPage(page)
	pageSize = clampPageSize(pageSize)

	var messages []models.Message
	err := database.DB.
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("sent_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	err = database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, requesterID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()}).Error
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, len(messages))
	for i, j := 0, len(messages)-1; j >= 0; i, j = i+1, j-1 {
		views[i] = MessageView{Message: messages[j], Sender: messages[j].Sender.Summary()}
	}
	return views, nil
}

// UnreadCount counts unread messages addressed to the user across all
// of their conversations. Recomputed on every call, never cached.
func UnreadCount(userID uuid.UUID) (int64, error) {
	conversationIDs := database.DB.Model(&models.Conversation{}).
		Select("id").
		Where("participant_one = ? OR participant_two = ?", userID, userID)

	var count int64
	err := database.DB.Model(&models.Message{}).
		Where("conversation_id IN (?) AND sender_id <> ? AND is_read = ?", conversationIDs, userID, false).
		Count(&count).Error
	return count, err
}

// DeleteMessage soft-deletes a message on behalf of its sender. The
// tombstone keeps the row but removes it from history forever.
func DeleteMessage(messageID, requesterID uuid.UUID) error {
	var message models.Message
	if err := database.DB.First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if message.SenderID != requesterID {
		return ErrNotFound
	}
	return database.DB.Delete(&message).Error
}

// UserSummary loads the participant shape for broadcast payloads.
func UserSummary(userID uuid.UUID) (models.UserSummary, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return models.UserSummary{}, err
	}
	return user.Summary(), nil
}

// ConversationForParticipant loads a conversation and enforces that the
// user belongs to it. Missing conversation and non-participant access
// collapse into the same ErrNotFound so that existence never leaks.
func ConversationForParticipant(conversationID, userID uuid.UUID) (models.Conversation, error) {
	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation, ErrNotFound
		}
		return conversation, err
	}
	if !conversation.HasParticipant(userID) {
		return conversation, ErrNotFound
	}
	return conversation, nil
}
