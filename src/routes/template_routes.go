package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func TemplateRoutes(app *fiber.App) {
	templateRoutes := app.Group("/templates", middleware.AuthJWT)

	// data sources มาก่อน :id เพื่อไม่ให้ path ชนกัน
	sources := templateRoutes.Group("/sources", middleware.RequireRoles(models.RoleAdmin))
	sources.Get("/batches", controllers.GetBatchSources)
	sources.Get("/batches/:batchId", controllers.GetBatchSourceByID)
	sources.Get("/projects", controllers.GetProjectSources)
	sources.Get("/projects/:projectId", controllers.GetProjectSourceByID)

	templateRoutes.Get("/", controllers.GetAllTemplates)
	templateRoutes.Post("/", middleware.RequireRoles(models.RoleAdmin), controllers.CreateTemplate)
	templateRoutes.Get("/:id", controllers.GetTemplateByID)
	templateRoutes.Get("/:id/export", controllers.ExportTemplate)
	templateRoutes.Get("/:id/tasks", controllers.GetTemplateTasks)
}
