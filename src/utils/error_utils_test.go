package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorResponseFrom(t *testing.T, app *fiber.App, path string) (int, models.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp.StatusCode, parsed
}

func TestHandleErrorOmitsDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return HandleError(c, fiber.StatusNotFound, "template not found")
	})

	status, parsed := errorResponseFrom(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, fiber.StatusNotFound, parsed.Status)
	assert.Equal(t, "template not found", parsed.Message)
	assert.Empty(t, parsed.Detail)
}

func TestHandleErrorDetailCarriesInnerError(t *testing.T) {
	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return HandleErrorDetail(c, fiber.StatusConflict,
			"import has task id conflicts", errors.New("dup-1, dup-2"))
	})

	status, parsed := errorResponseFrom(t, app, "/conflict")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "import has task id conflicts", parsed.Message)
	assert.Equal(t, "dup-1, dup-2", parsed.Detail)
}
