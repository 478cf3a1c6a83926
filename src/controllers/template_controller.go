package controllers

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTemplate godoc
// @Summary      Save a template
// @Description  Validates and persists a template document (layout + rules) for a project
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body body models.TemplateCreateRequest true "Template document"
// @Success      201  {object}  models.Template
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /templates [post]
func CreateTemplate(c *fiber.Ctx) error {
	var req models.TemplateCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	createdBy := currentUserID(c)
	template, err := templates.CreateTemplate(c.Context(), &req, createdBy)
	if err != nil {
		if err == templates.ErrProjectNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// GetAllTemplates godoc
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Param        page    query  int     false  "Page number"  default(1)
// @Param        limit   query  int     false  "Items per page"  default(10)
// @Param        search  query  string  false  "Filter by template name"
// @Param        sortBy  query  string  false  "Sort field"  default(createdAt)
// @Param        order   query  string  false  "asc or desc"  default(desc)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /templates [get]
func GetAllTemplates(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query parameters: "+err.Error())
	}

	templateList, err := templates.ListTemplates(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(templateList)
}

// GetTemplateByID godoc
// @Summary      Get a template by ID
// @Tags         templates
// @Produce      json
// @Param        id   path  string  true  "Template ID"
// @Success      200  {object}  models.Template
// @Failure      404  {object}  models.ErrorResponse
// @Router       /templates/{id} [get]
func GetTemplateByID(c *fiber.Ctx) error {
	template, err := templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(template)
}

// ExportTemplate godoc
// @Summary      Export a template as JSON
// @Description  Download {blocks, rules} of a template
// @Tags         templates
// @Produce      json
// @Param        id   path  string  true  "Template ID"
// @Success      200  {object}  models.TemplateExport
// @Failure      404  {object}  models.ErrorResponse
// @Router       /templates/{id}/export [get]
func ExportTemplate(c *fiber.Ctx) error {
	template, err := templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	raw, err := templates.ExportTemplate(template)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template-`+template.ID+`.json"`)
	return c.Send(raw)
}

// GetTemplateTasks godoc
// @Summary      One page of a template's task feed
// @Description  Returns the template, the inferred schema, and a page of tasks
// @Tags         templates
// @Produce      json
// @Param        id      path   string  true   "Template ID"
// @Param        limit   query  int     false  "Page size (default 20, max 200)"
// @Param        offset  query  int     false  "Offset into the feed"
// @Success      200  {object}  models.TemplateTasksResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /templates/{id}/tasks [get]
func GetTemplateTasks(c *fiber.Ctx) error {
	params := models.FeedParams{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	params.Normalize()

	page, err := playerService.FetchTasks(c.Context(), c.Params("id"), params.Limit, params.Offset)
	if err != nil {
		if err == templates.ErrTemplateNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(page)
}

// GetBatchSources godoc
// @Summary      List import batches usable as builder data sources
// @Tags         template-sources
// @Produce      json
// @Success      200  {array}  models.TemplateSourceSummary
// @Failure      500  {object}  models.ErrorResponse
// @Router       /templates/sources/batches [get]
func GetBatchSources(c *fiber.Ctx) error {
	sources, err := templates.ListBatchSources(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(sources)
}

// GetBatchSourceByID godoc
// @Summary      Schema and sample rows of one import batch
// @Tags         template-sources
// @Produce      json
// @Param        batchId path string true "Batch ID"
// @Success      200  {object}  models.TemplateSourceDetail
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /templates/sources/batches/{batchId} [get]
func GetBatchSourceByID(c *fiber.Ctx) error {
	detail, err := templates.GetBatchSource(c.Context(), c.Params("batchId"))
	if err != nil {
		switch err {
		case templates.ErrBatchNotFound:
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case templates.ErrBatchNotReady:
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(detail)
}

// GetProjectSources godoc
// @Summary      List projects usable as builder data sources
// @Tags         template-sources
// @Produce      json
// @Success      200  {array}  models.ProjectTemplateSourceSummary
// @Failure      500  {object}  models.ErrorResponse
// @Router       /templates/sources/projects [get]
func GetProjectSources(c *fiber.Ctx) error {
	sources, err := templates.ListProjectSources(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(sources)
}

// GetProjectSourceByID godoc
// @Summary      Schema and sample rows of a project's task data
// @Tags         template-sources
// @Produce      json
// @Param        projectId path string true "Project ID"
// @Success      200  {object}  models.ProjectTemplateSourceDetail
// @Failure      404  {object}  models.ErrorResponse
// @Router       /templates/sources/projects/{projectId} [get]
func GetProjectSourceByID(c *fiber.Ctx) error {
	projectID, err := primitive.ObjectIDFromHex(c.Params("projectId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}
	detail, err := templates.GetProjectSource(c.Context(), projectID)
	if err != nil {
		if err == templates.ErrProjectNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(detail)
}

// currentUserID reads the authenticated user id set by the JWT middleware.
func currentUserID(c *fiber.Ctx) *primitive.ObjectID {
	raw, _ := c.Locals("userId").(string)
	if raw == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil
	}
	return &id
}
