package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	_ "Backend-Dhriti-AI/docs"
	"Backend-Dhriti-AI/src/controllers"
	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/jobs"
	"Backend-Dhriti-AI/src/routes"
	"Backend-Dhriti-AI/src/services"
	"Backend-Dhriti-AI/src/services/builder"
	"Backend-Dhriti-AI/src/services/player"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {

	// เชื่อมต่อกับ MongoDB
	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	services.SeedDefaultAdmin(context.Background())

	// Redis + Asynq (optional - ระบบทำงานได้โดยไม่มี)
	database.InitRedis()
	database.InitAsynq()
	go jobs.StartWorker()

	// session managers อยู่ตรงนี้ ไม่ใช่ package-level ของ service
	playerService := player.NewService()
	builderManager := builder.NewManager()
	playerManager := player.NewManager(playerService, playerService)
	controllers.InitSessionManagers(builderManager, playerManager, playerService)

	// สร้าง app instance
	app := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// health พร้อมจำนวน session ที่เปิดอยู่
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"builder_sessions": builderManager.Count(),
			"player_sessions":  playerManager.Count(),
		})
	})

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app)

	// get url from .env
	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888" // ใช้ 8888 เป็นค่าเริ่มต้น
	}

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}

}
