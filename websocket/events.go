package websocket

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Client→server events.
const (
	EventAuth              = "auth"
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventSendMessage       = "send_message"
	EventTyping            = "typing"
	EventStopTyping        = "stop_typing"
)

// Server→client events.
const (
	EventNewMessage          = "new_message"
	EventMessageNotification = "message_notification"
	EventUserTyping          = "user_typing"
	EventUserStopTyping      = "user_stop_typing"
	EventAck                 = "ack"
	EventError               = "error"
)

// Envelope is the wire frame for every event in both directions.
// AckID is echoed back on the matching ack so the client can correlate
// request and response.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	AckID string          `json:"ack_id,omitempty"`
}

// NewEnvelope marshals a payload into an outbound frame.
func NewEnvelope(event string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: data}, nil
}

type AuthPayload struct {
	Token string `json:"token"`
}

type ConversationPayload struct {
	ConversationID string `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

type AckPayload struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type NotificationPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Sender         uuid.UUID `json:"sender"`
	Preview        string    `json:"preview"`
}

type TypingPayload struct {
	UserID uuid.UUID `json:"user_id"`
}
