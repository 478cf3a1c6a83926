package utils

import (
	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleErrorDetail แนบ detail จากชั้นใน (service/database) ไปกับ error
func HandleErrorDetail(c *fiber.Ctx, status int, message string, err error) error {
	resp := models.ErrorResponse{
		Status:  status,
		Message: message,
	}
	if err != nil {
		resp.Detail = err.Error()
	}
	return c.Status(status).JSON(resp)
}
