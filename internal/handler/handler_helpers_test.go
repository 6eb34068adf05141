package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/handler"
	"github.com/noah-isme/aoa-site/internal/middleware"
	"github.com/noah-isme/aoa-site/internal/router"
	"github.com/noah-isme/aoa-site/internal/service"
)

type stubRelay struct {
	err   error
	calls atomic.Int32
}

func (s *stubRelay) Send(context.Context, string, string, service.TemplateParams, string) error {
	s.calls.Add(1)
	return s.err
}

type testSite struct {
	t        *testing.T
	app      *fiber.App
	registry *service.SessionRegistry
	cookie   *http.Cookie
}

func newTestSite(t *testing.T, relay service.ContactRelay) *testSite {
	t.Helper()

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	registry := service.NewSessionRegistry(service.ContactDeps{
		Relay:       relay,
		Identifiers: service.RelayIdentifiers{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key"},
		Logger:      logger,
	}, time.Hour, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Alpha Omega Artworks", AppEnv: "test"}, router.Dependencies{
		PageHandler:    handler.NewPageHandler("Alpha Omega Artworks", validate, logger),
		ContactHandler: handler.NewContactHandler(validate, logger),
		Sessions:       middleware.Sessions(registry, middleware.SessionConfig{}),
		SessionCounter: registry,
	})

	return &testSite{t: t, app: app, registry: registry}
}

func (s *testSite) do(method, path, contentType string, body io.Reader) *http.Response {
	s.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			s.cookie = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
		}
	}
	return resp
}

func (s *testSite) post(path string) *http.Response {
	return s.do(http.MethodPost, path, "", nil)
}

func (s *testSite) postForm(path string, values url.Values) *http.Response {
	return s.do(http.MethodPost, path, fiber.MIMEApplicationForm, strings.NewReader(values.Encode()))
}

func (s *testSite) postJSON(path string, payload interface{}) *http.Response {
	s.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(s.t, err)
	return s.do(http.MethodPost, path, fiber.MIMEApplicationJSON, strings.NewReader(string(body)))
}

func (s *testSite) page() string {
	s.t.Helper()
	resp := s.do(http.MethodGet, "/", "", nil)
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return string(body)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
