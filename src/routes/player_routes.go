package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func PlayerRoutes(app *fiber.App) {
	playerRoutes := app.Group("/player/sessions", middleware.AuthJWT)
	playerRoutes.Post("/", controllers.OpenPlayerSession)
	playerRoutes.Get("/:sessionId/view", controllers.GetPlayerView)
	playerRoutes.Post("/:sessionId/next", controllers.NextTask)
	playerRoutes.Post("/:sessionId/prev", controllers.PrevTask)
	playerRoutes.Post("/:sessionId/load-more", controllers.LoadMoreTasks)
	playerRoutes.Put("/:sessionId/answers", controllers.AnswerBlock)
	playerRoutes.Post("/:sessionId/submit", controllers.SubmitTask)
	playerRoutes.Post("/:sessionId/discard", controllers.DiscardTask)
	playerRoutes.Delete("/:sessionId", controllers.ClosePlayerSession)
}
