package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func ProjectRoutes(app *fiber.App) {
	projectRoutes := app.Group("/projects", middleware.AuthJWT)
	projectRoutes.Get("/", controllers.GetAllProjects)
	projectRoutes.Post("/", middleware.RequireRoles(models.RoleAdmin), controllers.CreateProject)
	projectRoutes.Get("/:id", controllers.GetProjectByID)
	projectRoutes.Post("/:id/assignments", middleware.RequireRoles(models.RoleAdmin), controllers.AssignUserToProject)
}
