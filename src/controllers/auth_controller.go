package controllers

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services"
	"Backend-Dhriti-AI/src/utils"

	"github.com/gofiber/fiber/v2"
)

// LoginUser godoc
// @Summary      Login
// @Description  Authenticate with email and password, returns a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body object true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := services.AuthenticateUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// RegisterUser godoc
// @Summary      Create a user
// @Description  Admin creates a user with a role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.UserCreateRequest true "User"
// @Success      201  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /auth/users [post]
func RegisterUser(c *fiber.Ctx) error {
	var req models.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := services.CreateUser(c.Context(), &req)
	if err != nil {
		if err == services.ErrEmailTaken {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers godoc
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Param        role query string false "Filter by role"
// @Success      200  {array}  models.UserSummary
// @Failure      500  {object}  models.ErrorResponse
// @Router       /auth/users [get]
func GetUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(c.Context(), c.Query("role"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(users)
}

// GetMe godoc
// @Summary      Current user from the JWT
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/me [get]
func GetMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"id":    c.Locals("userId"),
		"email": c.Locals("email"),
		"role":  c.Locals("role"),
	})
}
