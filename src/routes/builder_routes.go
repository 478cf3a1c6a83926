package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func BuilderRoutes(app *fiber.App) {
	builderRoutes := app.Group("/builder/sessions", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin))
	builderRoutes.Post("/", controllers.CreateBuilderSession)
	builderRoutes.Get("/:sessionId", controllers.GetBuilderSession)
	builderRoutes.Delete("/:sessionId", controllers.CloseBuilderSession)

	builderRoutes.Post("/:sessionId/blocks", controllers.AddBlock)
	builderRoutes.Patch("/:sessionId/blocks/:blockId", controllers.UpdateBlock)
	builderRoutes.Delete("/:sessionId/blocks/:blockId", controllers.DeleteBlock)

	builderRoutes.Put("/:sessionId/selection", controllers.SelectBlock)
	builderRoutes.Delete("/:sessionId/selection", controllers.DeleteSelectedBlock)
	builderRoutes.Post("/:sessionId/nudge", controllers.NudgeBlock)

	builderRoutes.Put("/:sessionId/rules", controllers.SetRule)
	builderRoutes.Delete("/:sessionId/rules", controllers.RemoveRule)
	builderRoutes.Delete("/:sessionId/rules/all", controllers.ClearRules)
	builderRoutes.Post("/:sessionId/rules/preview", controllers.PreviewRule)

	builderRoutes.Put("/:sessionId/source", controllers.LoadBuilderSource)
	builderRoutes.Put("/:sessionId/sample-row", controllers.SetSampleRow)
	builderRoutes.Put("/:sessionId/view", controllers.SetViewOptions)

	builderRoutes.Post("/:sessionId/undo", controllers.UndoEdit)
	builderRoutes.Post("/:sessionId/redo", controllers.RedoEdit)

	builderRoutes.Post("/:sessionId/drag/begin", controllers.BeginDrag)
	builderRoutes.Post("/:sessionId/drag/move", controllers.DragMove)
	builderRoutes.Post("/:sessionId/drag/end", controllers.EndDrag)
	builderRoutes.Post("/:sessionId/resize/begin", controllers.BeginResize)
	builderRoutes.Post("/:sessionId/resize/move", controllers.ResizeMove)
	builderRoutes.Post("/:sessionId/resize/end", controllers.EndResize)

	builderRoutes.Post("/:sessionId/save", controllers.SaveBuilderSession)
	builderRoutes.Get("/:sessionId/export", controllers.ExportBuilderSession)
}
