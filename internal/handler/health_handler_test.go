package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aoa-site/internal/handler"
)

func TestHealthCountsSessions(t *testing.T) {
	site := newTestSite(t, &stubRelay{})
	site.page()

	resp := site.do(http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    handler.HealthResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "ok", body.Data.Status)
	require.Equal(t, "Alpha Omega Artworks", body.Data.Service)
	require.Equal(t, "test", body.Data.Environment)
	require.Equal(t, 1, body.Data.Sessions)
}
