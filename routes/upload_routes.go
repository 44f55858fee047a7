package routes

import (
	"github.com/equimarket/horse_market/handlers"
	"github.com/equimarket/horse_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	uploads := app.Group("/api/uploads", middleware.Protected())

	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
