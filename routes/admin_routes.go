package routes

import (
	"github.com/equimarket/horse_market/handlers"
	"github.com/equimarket/horse_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard", handlers.GetDashboard)
	admin.Get("/sellers/pending", handlers.GetPendingSellers)
	admin.Put("/sellers/:id/verify", handlers.VerifySeller)
	admin.Get("/vet-records/pending", handlers.GetPendingVetRecords)
	admin.Put("/vet-records/:id/validate", handlers.ValidateVetRecord)
	admin.Delete("/horses/:id", handlers.AdminDeleteHorse)
}
