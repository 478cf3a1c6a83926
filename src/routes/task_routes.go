package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func TaskRoutes(app *fiber.App) {
	taskRoutes := app.Group("/tasks", middleware.AuthJWT)
	taskRoutes.Get("/dashboard", controllers.GetTasksDashboard)
	taskRoutes.Post("/next", controllers.RequestNextTask)
	taskRoutes.Post("/:taskId/annotations", controllers.CreateAnnotation)
}
