package controllers

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/builder"
	"Backend-Dhriti-AI/src/services/templates"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getBuilderSession resolves the :sessionId param to a live session.
func getBuilderSession(c *fiber.Ctx) (*builder.Session, error) {
	s, err := builderManager.Get(c.Params("sessionId"))
	if err != nil {
		return nil, utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return s, nil
}

// CreateBuilderSession godoc
// @Summary      Open a builder editing session
// @Description  Creates an empty canvas scoped to a project
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        body body object true "project_id and template name"
// @Success      201  {object}  builder.SessionState
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions [post]
func CreateBuilderSession(c *fiber.Ctx) error {
	type createRequest struct {
		ProjectID string `json:"project_id" validate:"required"`
		Name      string `json:"name" validate:"required"`
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	s := builderManager.Create(req.ProjectID, req.Name)
	return c.Status(fiber.StatusCreated).JSON(s.State())
}

// GetBuilderSession godoc
// @Summary      Current state of a builder session
// @Tags         builder
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  builder.SessionState
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId} [get]
func GetBuilderSession(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	return c.JSON(s.State())
}

// CloseBuilderSession godoc
// @Summary      Close a builder session
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId} [delete]
func CloseBuilderSession(c *fiber.Ctx) error {
	if err := builderManager.Close(c.Params("sessionId")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddBlock godoc
// @Summary      Add a block from the palette
// @Description  Instantiates a block from its type preset and selects it
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "block type"
// @Success      201  {object}  models.Block
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/blocks [post]
func AddBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type addRequest struct {
		Type models.BlockType `json:"type"`
	}
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	block, err := s.AddBlock(req.Type)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(block)
}

// SelectBlock godoc
// @Summary      Change the selection
// @Description  An empty block id clears the selection
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "block id"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/selection [put]
func SelectBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type selectRequest struct {
		BlockID string `json:"block_id"`
	}
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.SelectBlock(req.BlockID); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateBlock godoc
// @Summary      Apply one committed Inspector edit
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        blockId   path string true "Block ID"
// @Param        body body builder.BlockUpdate true "Fields to update"
// @Success      200  {object}  models.Block
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/blocks/{blockId} [patch]
func UpdateBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var update builder.BlockUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	block, err := s.UpdateBlock(c.Params("blockId"), update)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(block)
}

// DeleteBlock godoc
// @Summary      Delete a block
// @Description  Rules bound to the block are removed with it
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Param        blockId   path string true "Block ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/blocks/{blockId} [delete]
func DeleteBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	if err := s.DeleteBlock(c.Params("blockId")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteSelectedBlock godoc
// @Summary      Delete the selected block (Delete key)
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/selection [delete]
func DeleteSelectedBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	if err := s.DeleteSelected(); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetRule godoc
// @Summary      Upsert a binding rule
// @Description  One rule per (component_key, target_prop); saving again replaces it
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body models.Rule true "Rule"
// @Success      204
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/rules [put]
func SetRule(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var rule models.Rule
	if err := c.BodyParser(&rule); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.SetRule(rule); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveRule godoc
// @Summary      Remove one binding rule
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Param        componentKey query string true "Block ID the rule targets"
// @Param        targetProp   query string true "Bound property"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/rules [delete]
func RemoveRule(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	if err := s.RemoveRule(c.Query("componentKey"), c.Query("targetProp")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearRules godoc
// @Summary      Remove all binding rules
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Router       /builder/sessions/{sessionId}/rules/all [delete]
func ClearRules(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	s.ClearRules()
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewRule godoc
// @Summary      Resolve a prospective rule against the sample row
// @Description  Read-only; shows what the player would render without saving
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "Rule and fallback value"
// @Success      200  {object}  map[string]interface{}
// @Router       /builder/sessions/{sessionId}/rules/preview [post]
func PreviewRule(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type previewRequest struct {
		Rule     models.Rule `json:"rule"`
		Fallback interface{} `json:"fallback"`
	}
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	return c.JSON(fiber.Map{"value": s.PreviewRule(req.Rule, req.Fallback)})
}

// LoadBuilderSource godoc
// @Summary      Load a data source into the session
// @Description  Replaces the bindable field list and sample row from a batch or project source
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "source kind (batch|project) and id"
// @Success      200  {object}  builder.SessionState
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/source [put]
func LoadBuilderSource(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type sourceRequest struct {
		Kind string `json:"kind" validate:"required,oneof=batch project"`
		ID   string `json:"id" validate:"required"`
	}
	var req sourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	var fields []models.TemplateField
	var sample map[string]interface{}
	switch req.Kind {
	case "batch":
		detail, err := templates.GetBatchSource(c.Context(), req.ID)
		if err != nil {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		fields = detail.Schema
		if len(detail.PreviewRows) > 0 {
			sample = detail.PreviewRows[0]
		}
	case "project":
		projectID, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
		}
		detail, err := templates.GetProjectSource(c.Context(), projectID)
		if err != nil {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		fields = detail.Schema
		if len(detail.PreviewRows) > 0 {
			sample = detail.PreviewRows[0]
		}
	}

	s.LoadSource(fields, sample)
	return c.JSON(s.State())
}

// SetSampleRow godoc
// @Summary      Replace the editable sample row
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "Raw sample row"
// @Success      204
// @Router       /builder/sessions/{sessionId}/sample-row [put]
func SetSampleRow(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var row map[string]interface{}
	if err := c.BodyParser(&row); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid JSON: "+err.Error())
	}
	s.SetSampleRow(row)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetViewOptions godoc
// @Summary      Adjust zoom and canvas-only mode
// @Description  View transforms only; stored block coordinates never scale
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "scale and/or canvas_only"
// @Success      200  {object}  map[string]interface{}
// @Router       /builder/sessions/{sessionId}/view [put]
func SetViewOptions(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type viewRequest struct {
		Scale      *float64 `json:"scale"`
		CanvasOnly *bool    `json:"canvas_only"`
	}
	var req viewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	resp := fiber.Map{}
	if req.Scale != nil {
		resp["scale"] = s.SetScale(*req.Scale)
	}
	if req.CanvasOnly != nil {
		s.SetCanvasOnly(*req.CanvasOnly)
		resp["canvas_only"] = *req.CanvasOnly
	}
	return c.JSON(resp)
}

// NudgeBlock godoc
// @Summary      Arrow-key move of the selected block
// @Description  1px per press, 10px with shift; each press is one undo step
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body object true "dx, dy in {-1,0,1} and shift"
// @Success      204
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/nudge [post]
func NudgeBlock(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	type nudgeRequest struct {
		DX    int  `json:"dx"`
		DY    int  `json:"dy"`
		Shift bool `json:"shift"`
	}
	var req nudgeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.Nudge(req.DX, req.DY, req.Shift); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UndoEdit godoc
// @Summary      Undo the last edit
// @Tags         builder
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  builder.SessionState
// @Router       /builder/sessions/{sessionId}/undo [post]
func UndoEdit(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	s.Undo()
	return c.JSON(s.State())
}

// RedoEdit godoc
// @Summary      Redo the most recently undone edit
// @Tags         builder
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  builder.SessionState
// @Router       /builder/sessions/{sessionId}/redo [post]
func RedoEdit(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	s.Redo()
	return c.JSON(s.State())
}

// gestureRequest carries pointer coordinates for drag/resize endpoints.
type gestureRequest struct {
	BlockID string `json:"block_id,omitempty"`
	Corner  string `json:"corner,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// BeginDrag godoc
// @Summary      Pointer-down on a block body
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body gestureRequest true "block_id and pointer position"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/drag/begin [post]
func BeginDrag(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var req gestureRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.BeginDrag(req.BlockID, req.X, req.Y); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DragMove godoc
// @Summary      Pointer-move during a drag
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body gestureRequest true "pointer position"
// @Success      204
// @Failure      409  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/drag/move [post]
func DragMove(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var req gestureRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.DragMove(req.X, req.Y); err != nil {
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EndDrag godoc
// @Summary      Pointer-up ending a drag
// @Description  Commits one undo step only when the block actually moved
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Failure      409  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/drag/end [post]
func EndDrag(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	if err := s.EndDrag(); err != nil {
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BeginResize godoc
// @Summary      Pointer-down on a corner handle of the selected block
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body gestureRequest true "corner (nw|ne|sw|se) and pointer position"
// @Success      204
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/resize/begin [post]
func BeginResize(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var req gestureRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.BeginResize(req.Corner, req.X, req.Y); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResizeMove godoc
// @Summary      Pointer-move during a resize
// @Tags         builder
// @Accept       json
// @Param        sessionId path string true "Session ID"
// @Param        body body gestureRequest true "pointer position"
// @Success      204
// @Failure      409  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/resize/move [post]
func ResizeMove(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	var req gestureRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := s.ResizeMove(req.X, req.Y); err != nil {
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EndResize godoc
// @Summary      Pointer-up ending a resize
// @Tags         builder
// @Param        sessionId path string true "Session ID"
// @Success      204
// @Failure      409  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/resize/end [post]
func EndResize(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	if err := s.EndResize(); err != nil {
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveBuilderSession godoc
// @Summary      Persist the session as a new template
// @Tags         builder
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      201  {object}  models.Template
// @Failure      400  {object}  models.ErrorResponse
// @Router       /builder/sessions/{sessionId}/save [post]
func SaveBuilderSession(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	template, err := s.Save(c.Context(), currentUserID(c))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// ExportBuilderSession godoc
// @Summary      Download the session document as JSON
// @Tags         builder
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200  {object}  models.TemplateExport
// @Router       /builder/sessions/{sessionId}/export [get]
func ExportBuilderSession(c *fiber.Ctx) error {
	s, err := getBuilderSession(c)
	if err != nil {
		return err
	}
	raw, err := s.Export()
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template.json"`)
	return c.Send(raw)
}
