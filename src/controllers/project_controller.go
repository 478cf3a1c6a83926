package controllers

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/projects"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProject godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body body models.ProjectCreateRequest true "Project"
// @Success      201  {object}  models.Project
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /projects [post]
func CreateProject(c *fiber.Ctx) error {
	var req models.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	project, err := projects.CreateProject(c.Context(), &req)
	if err != nil {
		if err == projects.ErrDuplicateName {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetAllProjects godoc
// @Summary      List projects with task totals
// @Tags         projects
// @Produce      json
// @Success      200  {array}  models.ProjectSummary
// @Failure      500  {object}  models.ErrorResponse
// @Router       /projects [get]
func GetAllProjects(c *fiber.Ctx) error {
	summaries, err := projects.ListProjects(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(summaries)
}

// GetProjectByID godoc
// @Summary      Get a project by ID
// @Tags         projects
// @Produce      json
// @Param        id   path  string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  models.ErrorResponse
// @Router       /projects/{id} [get]
func GetProjectByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	project, err := projects.GetProject(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(project)
}

// AssignUserToProject godoc
// @Summary      Assign an annotator to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Project ID"
// @Param        body body object true "user_id"
// @Success      201  {object}  models.ProjectAssignment
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /projects/{id}/assignments [post]
func AssignUserToProject(c *fiber.Ctx) error {
	projectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}
	type assignRequest struct {
		UserID string `json:"user_id" validate:"required"`
	}
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	assignment, err := projects.AssignUser(c.Context(), projectID, userID)
	if err != nil {
		switch err {
		case projects.ErrProjectNotFound, projects.ErrUserNotFound:
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case projects.ErrAlreadyAssigned:
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// GetTasksDashboard godoc
// @Summary      Annotator dashboard
// @Description  Assigned projects with counters, ratings, and recent reviews
// @Tags         projects
// @Produce      json
// @Success      200  {object}  models.TasksDashboardResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /tasks/dashboard [get]
func GetTasksDashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing user identity")
	}
	dashboard, err := projects.Dashboard(c.Context(), *userID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dashboard)
}

// RequestNextTask godoc
// @Summary      Pull the next available task
// @Description  Hands the oldest unassigned NEW task from the user's projects to the user, capped at 5 open tasks
// @Tags         projects
// @Produce      json
// @Success      200  {object}  models.ProjectTask
// @Success      204  "No task available"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /tasks/next [post]
func RequestNextTask(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing user identity")
	}
	task, err := projects.AssignTaskToUser(c.Context(), *userID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	if task == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(task)
}
