package routes

import (
	"github.com/equimarket/horse_market/handlers"
	"github.com/equimarket/horse_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func HorseRoutes(app *fiber.App) {
	horses := app.Group("/api/horses")

	// Public
	horses.Get("", handlers.ListHorses)
	horses.Get("/my-listings", middleware.Protected(), middleware.SellerRequired(), handlers.MyListings)
	horses.Get("/:id", handlers.GetHorse)
	horses.Get("/:id/vet-records", handlers.GetVetRecords)

	// Protected
	horses.Post("", middleware.Protected(), middleware.SellerRequired(), handlers.CreateHorse)
	horses.Put("/:id", middleware.Protected(), middleware.SellerRequired(), handlers.UpdateHorse)
	horses.Delete("/:id", middleware.Protected(), handlers.DeleteHorse)

	horses.Post("/:id/vet-record", middleware.Protected(), middleware.SellerRequired(), handlers.AddVetRecord)
	horses.Post("/:id/fact-sheet", middleware.Protected(), middleware.SellerRequired(), handlers.GenerateFactSheet)
}
