package controllers

import (
	"Backend-Dhriti-AI/src/services/qc"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AcceptTask godoc
// @Summary      Accept a submitted task
// @Tags         qc
// @Param        taskId path string true "Task ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /qc/tasks/{taskId}/accept [post]
func AcceptTask(c *fiber.Ctx) error {
	if err := qc.AcceptTask(c.Context(), c.Params("taskId")); err != nil {
		if err == qc.ErrTaskNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectTask godoc
// @Summary      Reject a submitted task with a reason
// @Tags         qc
// @Accept       json
// @Param        taskId path string true "Task ID"
// @Param        body body object true "reason"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /qc/tasks/{taskId}/reject [post]
func RejectTask(c *fiber.Ctx) error {
	type rejectRequest struct {
		Reason string `json:"reason"`
	}
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := qc.RejectTask(c.Context(), c.Params("taskId"), req.Reason); err != nil {
		if err == qc.ErrTaskNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReworkTask godoc
// @Summary      Send a rejected task back to the annotator
// @Tags         qc
// @Param        taskId path string true "Task ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /qc/tasks/{taskId}/rework [post]
func ReworkTask(c *fiber.Ctx) error {
	if err := qc.ReworkTask(c.Context(), c.Params("taskId")); err != nil {
		if err == qc.ErrTaskNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkAcceptTasks godoc
// @Summary      Accept many tasks
// @Description  Per-task failures are collected, the batch is not aborted
// @Tags         qc
// @Accept       json
// @Produce      json
// @Param        body body object true "task_ids"
// @Success      200  {object}  qc.BulkResult
// @Failure      400  {object}  models.ErrorResponse
// @Router       /qc/tasks/bulk-accept [post]
func BulkAcceptTasks(c *fiber.Ctx) error {
	type bulkRequest struct {
		TaskIDs []string `json:"task_ids" validate:"required,min=1"`
	}
	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(qc.BulkAccept(c.Context(), req.TaskIDs))
}

// BulkRejectTasks godoc
// @Summary      Reject many tasks with one shared reason
// @Tags         qc
// @Accept       json
// @Produce      json
// @Param        body body object true "task_ids and reason"
// @Success      200  {object}  qc.BulkResult
// @Failure      400  {object}  models.ErrorResponse
// @Router       /qc/tasks/bulk-reject [post]
func BulkRejectTasks(c *fiber.Ctx) error {
	type bulkRequest struct {
		TaskIDs []string `json:"task_ids" validate:"required,min=1"`
		Reason  string   `json:"reason"`
	}
	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(qc.BulkReject(c.Context(), req.TaskIDs, req.Reason))
}
