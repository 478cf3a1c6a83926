package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func QCRoutes(app *fiber.App) {
	qcRoutes := app.Group("/qc", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer))
	qcRoutes.Post("/tasks/bulk-accept", controllers.BulkAcceptTasks)
	qcRoutes.Post("/tasks/bulk-reject", controllers.BulkRejectTasks)
	qcRoutes.Post("/tasks/:taskId/accept", controllers.AcceptTask)
	qcRoutes.Post("/tasks/:taskId/reject", controllers.RejectTask)
	qcRoutes.Post("/tasks/:taskId/rework", controllers.ReworkTask)
}
