package controllers

import (
	"Backend-Dhriti-AI/src/services/player"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
)

func getPlayerSession(c *fiber.Ctx) (*player.Runtime, error) {
	r, err := playerManager.Get(c.Params("sessionId"))
	if err != nil {
		return nil, utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return r, nil
}

// renderOrError ส่ง view ปัจจุบันกลับ หรือ error ถ้าไม่มี task
func renderOrError(c *fiber.Ctx, r *player.Runtime) error {
	view, err := r.Render()
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(view)
}

// OpenPlayerSession godoc
// @Summary      Open a player session on a template
// @Description  Loads the first page of the template's task feed
// @Tags         player
// @Accept       json
// @Produce      json
// @Param        body body object true "template_id, mode (preview|perform), page_size"
// @Success      201  {object}  player.RenderView
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions [post]
func OpenPlayerSession(c *fiber.Ctx) error {
	type openRequest struct {
		TemplateID string `json:"template_id" validate:"required"`
		Mode       string `json:"mode"`
		PageSize   int    `json:"page_size"`
	}
	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	userID, _ := c.Locals("userId").(string)
	r, err := playerManager.Open(c.Context(), req.TemplateID, userID, req.Mode, req.PageSize)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	view, err := r.Render()
	if err != nil {
		// a template can legitimately have zero tasks yet
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": r.ID, "view": nil})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": r.ID, "view": view})
}

// GetPlayerView godoc
// @Summary      Render the current task
// @Description  The template layout with every rule resolved against the current task record
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  player.RenderView
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/view [get]
func GetPlayerView(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	return renderOrError(c, r)
}

// NextTask godoc
// @Summary      Advance to the next task
// @Description  Fetches another page when the loaded list is exhausted; stays put when the feed has nothing new
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  player.RenderView
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/next [post]
func NextTask(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	if _, err := r.Next(c.Context()); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return renderOrError(c, r)
}

// PrevTask godoc
// @Summary      Step back to the previous task
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  player.RenderView
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/prev [post]
func PrevTask(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	r.Prev()
	return renderOrError(c, r)
}

// LoadMoreTasks godoc
// @Summary      Fetch the next feed page without moving
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/load-more [post]
func LoadMoreTasks(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	added, err := r.LoadMore(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	loaded, total := r.TaskCount()
	return c.JSON(fiber.Map{
		"added":    added,
		"loaded":   loaded,
		"total":    total,
		"has_more": r.HasMore(),
	})
}

// AnswerBlock godoc
// @Summary      Record one interactive block's answer
// @Description  Answers belong to the current task and reset on navigation
// @Tags         player
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "block_id and value"
// @Success      204
// @Failure      400  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/answers [put]
func AnswerBlock(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	type answerRequest struct {
		BlockID string      `json:"block_id"`
		Value   interface{} `json:"value"`
	}
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := r.Answer(req.BlockID, req.Value); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitTask godoc
// @Summary      Submit the current task's answers
// @Description  On failure the collected answers are kept so the user can retry
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      201  {object}  models.TaskAnnotation
// @Failure      409  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/submit [post]
func SubmitTask(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	annotation, err := r.Submit(c.Context())
	if err != nil {
		if err == player.ErrAlreadySubmitted {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(annotation)
}

// DiscardTask godoc
// @Summary      Discard the current task
// @Description  Marks the task discarded with no annotations and advances
// @Tags         player
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  player.RenderView
// @Failure      409  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId}/discard [post]
func DiscardTask(c *fiber.Ctx) error {
	r, err := getPlayerSession(c)
	if err != nil {
		return err
	}
	if err := r.Discard(c.Context()); err != nil {
		if err == player.ErrAlreadySubmitted || err == player.ErrAlreadyDiscarded {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return renderOrError(c, r)
}

// ClosePlayerSession godoc
// @Summary      Close a player session
// @Description  In-memory answers are dropped with the session
// @Tags         player
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /player/sessions/{sessionId} [delete]
func ClosePlayerSession(c *fiber.Ctx) error {
	if err := playerManager.Close(c.Params("sessionId")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
