package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aoa-site/internal/observability"
	"github.com/noah-isme/aoa-site/internal/service"
)

func newTestRegistry() *service.SessionRegistry {
	return service.NewSessionRegistry(service.ContactDeps{
		Relay:  service.NewLogRelay(zerolog.Nop()),
		Logger: zerolog.Nop(),
	}, time.Minute, zerolog.Nop())
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestSessionsIssuesCookieAndRefreshesOnReuse(t *testing.T) {
	registry := newTestRegistry()
	app := fiber.New()
	app.Use(Sessions(registry, SessionConfig{TTL: time.Minute}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(SessionFromContext(c).ID)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 60, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 1, registry.Len())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, cookie.Value, string(body))

	refreshed := sessionCookie(resp)
	require.NotNil(t, refreshed)
	require.Equal(t, cookie.Value, refreshed.Value)
	require.Equal(t, 60, refreshed.MaxAge)
}

func TestSessionsReplacesUnknownCookie(t *testing.T) {
	registry := newTestRegistry()
	app := fiber.New()
	app.Use(Sessions(registry, SessionConfig{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.NotEqual(t, "forged", cookie.Value)
}

func TestCorrelationIDPropagates(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c) + "|" + observability.CorrelationID(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get(HeaderCorrelationID))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "abc-123|abc-123", string(body))
}

func TestCorrelationIDReplacesUnsafeValues(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, incoming := range []string{"bad id", strings.Repeat("a", 65), "<script>"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderCorrelationID, incoming)
		resp, err := app.Test(req)
		require.NoError(t, err)

		got := resp.Header.Get(HeaderCorrelationID)
		require.NotEqual(t, incoming, got)
		_, err = uuid.Parse(got)
		require.NoError(t, err)
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	app := fiber.New()
	app.Post("/contact", RateLimit("contact", 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/contact", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/contact", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestLatencyBucket(t *testing.T) {
	require.Equal(t, "<=25ms", latencyBucket(10*time.Millisecond))
	require.Equal(t, "<=500ms", latencyBucket(300*time.Millisecond))
	require.Equal(t, ">2s", latencyBucket(3*time.Second))
}
