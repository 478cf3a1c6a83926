package services

import (
	"context"
	"log"
	"os"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedDefaultAdmin สร้าง admin คนแรกถ้ายังไม่มีผู้ใช้ในระบบ
// password มาจาก ENV (ADMIN_PASSWORD) เพื่อไม่ให้ hardcode
func SeedDefaultAdmin(ctx context.Context) {
	count, err := database.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("⚠️ No users exist and ADMIN_PASSWORD is not set. Skipping admin seed.")
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@dhriti.ai"
	}

	_, err = CreateUser(ctx, &models.UserCreateRequest{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		log.Println("❌ Failed to seed default admin:", err)
		return
	}
	log.Println("✅ Seeded default admin:", email)
}
