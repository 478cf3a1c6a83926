package routes

import (
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/middleware"
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/login", controllers.LoginUser)
	auth.Get("/me", middleware.AuthJWT, controllers.GetMe)

	// จัดการผู้ใช้ - admin เท่านั้น
	auth.Post("/users", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin), controllers.RegisterUser)
	auth.Get("/users", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin), controllers.GetUsers)
}
