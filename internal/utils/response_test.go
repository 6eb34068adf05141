package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aoa-site/internal/utils"
)

func respond(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestSendSuccess(t *testing.T) {
	status, payload := respond(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"status": "sent"})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "success", payload["message"])
	require.Equal(t, map[string]interface{}{"status": "sent"}, payload["data"])
}

func TestSendError(t *testing.T) {
	status, payload := respond(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusTooManyRequests, "")
	})

	require.Equal(t, fiber.StatusTooManyRequests, status)
	require.Equal(t, false, payload["success"])
	require.Equal(t, "error", payload["message"])
	require.NotContains(t, payload, "data")
}

func TestSendErrorWithData(t *testing.T) {
	status, payload := respond(t, func(c *fiber.Ctx) error {
		return utils.SendErrorWithData(c, fiber.StatusUnprocessableEntity, "invalid contact form", map[string]string{"email": "email"})
	})

	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.Equal(t, "invalid contact form", payload["message"])
	require.Equal(t, map[string]interface{}{"email": "email"}, payload["data"])
}
