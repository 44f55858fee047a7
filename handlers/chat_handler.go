package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	configs "github.com/equimarket/horse_market/configs"
	"github.com/equimarket/horse_market/services"
	"github.com/equimarket/horse_market/utils"
	ws "github.com/equimarket/horse_market/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var chatHub = ws.NewHub()

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

// POST /api/chat/conversations
func CreateOrGetConversation(c *fiber.Ctx) error {
	userID := currentUserID(c)

	type Request struct {
		RecipientID string  `json:"recipient_id" validate:"required,uuid"`
		HorseID     *string `json:"horse_id,omitempty" validate:"omitempty,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recipient ID"})
	}
	var horseID *uuid.UUID
	if req.HorseID != nil && *req.HorseID != "" {
		parsed, err := uuid.Parse(*req.HorseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
		}
		horseID = &parsed
	}

	conversation, err := services.GetOrCreateConversation(userID, recipientID, horseID)
	switch {
	case errors.Is(err, services.ErrInvalidParticipant):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot message yourself"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	case err != nil:
		log.Printf("getOrCreateConversation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create conversation"})
	}

	return c.JSON(conversation)
}

// GET /api/chat/conversations
func GetUserConversations(c *fiber.Ctx) error {
	conversations, err := services.ListConversations(currentUserID(c))
	if err != nil {
		log.Printf("listConversations error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}
	return c.JSON(conversations)
}

// GET /api/chat/conversations/:conversationId/messages
func GetConversationMessages(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("limit", "30"))

	messages, err := services.History(conversationID, currentUserID(c), page, pageSize)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	case err != nil:
		log.Printf("getMessages error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

// POST /api/chat/conversations/:conversationId/messages
// Synchronous fallback for clients without a live connection. Runs the
// same persistence sequence as the websocket path.
func SendMessageRest(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	type Request struct {
		Text string `json:"text" validate:"required,max=2000"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	message, err := services.SendMessage(conversationID, currentUserID(c), req.Text)
	switch {
	case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrMessageTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	case err != nil:
		log.Printf("sendMessage error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GET /api/chat/unread-count
func GetUnreadCount(c *fiber.Ctx) error {
	count, err := services.UnreadCount(currentUserID(c))
	if err != nil {
		log.Printf("unreadCount error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread count"})
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// DELETE /api/chat/messages/:messageId
func DeleteMessage(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message ID"})
	}

	err = services.DeleteMessage(messageID, currentUserID(c))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	case err != nil:
		log.Printf("deleteMessage error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete message"})
	}

	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// ServeWs upgrades a connection into the real-time channel. The first
// frame must authenticate; everything after that is event dispatch.
// Store failures inside an event are reported on that event's ack and
// never tear down the connection.
func ServeWs(c *websocketcontrib.Conn) {
	var authEnv ws.Envelope
	if err := c.ReadJSON(&authEnv); err != nil || authEnv.Event != ws.EventAuth {
		log.Printf("WebSocket auth failed: missing auth frame, error: %v", err)
		writeError(c, "Authentication required")
		c.Close()
		return
	}

	var auth ws.AuthPayload
	if err := json.Unmarshal(authEnv.Data, &auth); err != nil || auth.Token == "" {
		writeError(c, "Authentication required")
		c.Close()
		return
	}

	claims, err := parseToken(auth.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token, error: %v", err)
		writeError(c, "Invalid token")
		c.Close()
		return
	}

	subject, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		writeError(c, "Invalid user ID")
		c.Close()
		return
	}

	client := &ws.Client{UserID: userID, Conn: c}
	chatHub.Register(client)
	log.Printf("WebSocket client authenticated and registered: %s", userID)
	defer func() {
		chatHub.Unregister(client)
		c.Close()
		log.Printf("WebSocket client unregistered: %s", userID)
	}()

	for {
		var env ws.Envelope
		if err := c.ReadJSON(&env); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		dispatchEvent(client, env)
	}
}

// dispatchEvent isolates each event: a panic inside one handler is
// acked as a failure and never takes the connection down.
func dispatchEvent(client *ws.Client, env ws.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic handling %s for client %s: %v", env.Event, client.UserID, r)
			sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Internal error"})
		}
	}()

	switch env.Event {
	case ws.EventJoinConversation:
		handleJoin(client, env)
	case ws.EventLeaveConversation:
		handleLeave(client, env)
	case ws.EventSendMessage:
		handleSendMessage(client, env)
	case ws.EventTyping:
		handleTyping(client, env, ws.EventUserTyping)
	case ws.EventStopTyping:
		handleTyping(client, env, ws.EventUserStopTyping)
	default:
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Unknown event"})
	}
}

func handleJoin(client *ws.Client, env ws.Envelope) {
	conversationID, ok := conversationIDFrom(client, env)
	if !ok {
		return
	}

	if _, err := services.ConversationForParticipant(conversationID, client.UserID); err != nil {
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Conversation not found"})
		return
	}

	chatHub.Join(client, conversationID)
	sendAck(client, env.AckID, ws.AckPayload{Success: true})
}

func handleLeave(client *ws.Client, env ws.Envelope) {
	conversationID, ok := conversationIDFrom(client, env)
	if !ok {
		return
	}
	chatHub.Leave(client, conversationID)
}

func handleSendMessage(client *ws.Client, env ws.Envelope) {
	var payload ws.SendMessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Cannot parse payload"})
		return
	}
	conversationID, err := uuid.Parse(payload.ConversationID)
	if err != nil {
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Invalid conversation ID"})
		return
	}

	message, err := services.SendMessage(conversationID, client.UserID, payload.Text)
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Conversation not found"})
		return
	case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrMessageTooLong):
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: err.Error()})
		return
	case err != nil:
		log.Printf("Socket send_message error for client %s: %v", client.UserID, err)
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Error sending message"})
		return
	}

	sender, err := services.UserSummary(client.UserID)
	if err != nil {
		log.Printf("Socket sender lookup failed for client %s: %v", client.UserID, err)
	}
	view := services.MessageView{Message: message, Sender: sender}

	// Everyone in the conversation room gets the full message, the
	// sender included, so other devices of the sender stay in sync.
	if broadcast, err := ws.NewEnvelope(ws.EventNewMessage, view); err == nil {
		chatHub.BroadcastToRoom(conversationID, broadcast, nil)
	}

	// The other participant gets a lightweight notification on their
	// personal room even when they never joined the conversation room.
	conversation, err := services.ConversationForParticipant(conversationID, client.UserID)
	if err == nil {
		if recipientID, ok := conversation.OtherParticipant(client.UserID); ok {
			notification, err := ws.NewEnvelope(ws.EventMessageNotification, ws.NotificationPayload{
				ConversationID: conversationID,
				Sender:         client.UserID,
				Preview:        utils.Preview(payload.Text),
			})
			if err == nil {
				chatHub.SendToUser(recipientID, notification)
			}
		}
	}

	sendAck(client, env.AckID, ws.AckPayload{Success: true, Data: view})
}

func handleTyping(client *ws.Client, env ws.Envelope, outEvent string) {
	conversationID, ok := conversationIDFrom(client, env)
	if !ok {
		return
	}

	// Pure relay with no persistence and no delivery guarantee.
	relay, err := ws.NewEnvelope(outEvent, ws.TypingPayload{UserID: client.UserID})
	if err != nil {
		return
	}
	chatHub.BroadcastToRoom(conversationID, relay, client)
}

func conversationIDFrom(client *ws.Client, env ws.Envelope) (uuid.UUID, bool) {
	var payload ws.ConversationPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Cannot parse payload"})
		return uuid.Nil, false
	}
	conversationID, err := uuid.Parse(payload.ConversationID)
	if err != nil {
		sendAck(client, env.AckID, ws.AckPayload{Success: false, Message: "Invalid conversation ID"})
		return uuid.Nil, false
	}
	return conversationID, true
}

func sendAck(client *ws.Client, ackID string, payload ws.AckPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := client.Send(ws.Envelope{Event: ws.EventAck, Data: data, AckID: ackID}); err != nil {
		log.Printf("Failed to ack client %s: %v", client.UserID, err)
	}
}

func writeError(c *websocketcontrib.Conn, message string) {
	env, err := ws.NewEnvelope(ws.EventError, ws.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	_ = c.WriteJSON(env)
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(configs.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
