package controllers

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateAnnotation godoc
// @Summary      Submit an annotation for a task directly
// @Description  Same write path the player uses; clients without a session can post results here
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Param        body body models.AnnotationCreate true "Annotation"
// @Success      201  {object}  models.TaskAnnotation
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /tasks/{taskId}/annotations [post]
func CreateAnnotation(c *fiber.Ctx) error {
	var req models.AnnotationCreate
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	req.TaskID = c.Params("taskId")
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	userID, _ := c.Locals("userId").(string)
	annotation, err := playerService.SaveAnnotation(c.Context(), userID, &req)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(annotation)
}
