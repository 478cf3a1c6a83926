package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func IngestRoutes(app *fiber.App) {
	ingestRoutes := app.Group("/ingest", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin))
	ingestRoutes.Post("/preview", controllers.PreviewImport)
	ingestRoutes.Post("/confirm", controllers.ConfirmImport)
}
