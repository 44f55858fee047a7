package routes

import (
	"github.com/equimarket/horse_market/handlers"
	"github.com/equimarket/horse_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)
	auth.Put("/seller-profile", middleware.Protected(), middleware.SellerRequired(), handlers.UpdateSellerProfile)
}
