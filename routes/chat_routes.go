package routes

import (
	"github.com/equimarket/horse_market/handlers"
	"github.com/equimarket/horse_market/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	chat := app.Group("/api/chat")

	rest := chat.Group("", middleware.Protected())
	rest.Get("/unread-count", handlers.GetUnreadCount)
	rest.Get("/conversations", handlers.GetUserConversations)
	rest.Post("/conversations", handlers.CreateOrGetConversation)
	rest.Get("/conversations/:conversationId/messages", handlers.GetConversationMessages)
	rest.Post("/conversations/:conversationId/messages", handlers.SendMessageRest)
	rest.Delete("/messages/:messageId", handlers.DeleteMessage)

	// The websocket connection authenticates itself with its first
	// frame instead of the Authorization header.
	chat.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	chat.Get("/ws", websocket.New(handlers.ServeWs))
}
