package controllers

import (
	"errors"

	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/ingest"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
)

// PreviewImport godoc
// @Summary      Preview an import
// @Description  Infers the schema and reports task id conflicts without writing anything
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body body models.ImportPreviewRequest true "Rows to import"
// @Success      200  {object}  models.ImportPreviewResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /ingest/preview [post]
func PreviewImport(c *fiber.Ctx) error {
	var req models.ImportPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	preview, err := ingest.Preview(c.Context(), &req)
	if err != nil {
		if err == ingest.ErrProjectNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleErrorDetail(c, fiber.StatusInternalServerError, "Import preview failed", err)
	}
	return c.JSON(preview)
}

// ConfirmImport godoc
// @Summary      Confirm an import
// @Description  Stages the rows as a batch; a background worker materializes them into tasks
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body body models.ImportConfirmRequest true "Rows to import"
// @Success      202  {object}  models.ImportConfirmResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /ingest/confirm [post]
func ConfirmImport(c *fiber.Ctx) error {
	var req models.ImportConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := ingest.Confirm(c.Context(), &req)
	if err != nil {
		switch {
		case err == ingest.ErrProjectNotFound:
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, ingest.ErrConflicts):
			// detail carries the conflicting task ids
			return utils.HandleErrorDetail(c, fiber.StatusConflict, ingest.ErrConflicts.Error(), err)
		}
		return utils.HandleErrorDetail(c, fiber.StatusInternalServerError, "Import confirm failed", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(result)
}
