package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-concierge-be/internal/bootstrap"
	"clinic-concierge-be/internal/config"
)

type stubController struct{}

func (s *stubController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", s.Chat)
}

func (s *stubController) Chat(ctx *fiber.Ctx) error         { return ctx.SendStatus(fiber.StatusOK) }
func (s *stubController) ResetSession(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) }
func (s *stubController) SetApiKey(ctx *fiber.Ctx) error    { return ctx.SendStatus(fiber.StatusOK) }
func (s *stubController) Health(ctx *fiber.Ctx) error       { return ctx.SendStatus(fiber.StatusOK) }
func (s *stubController) Ready(ctx *fiber.Ctx) error        { return ctx.SendStatus(fiber.StatusOK) }

// The CORS middleware runs with AllowCredentials enabled, and fiber panics
// at startup when that is combined with a wildcard origin. The default
// config must therefore never carry "*".
func TestNewWithDefaultConfigDoesNotPanic(t *testing.T) {
	cfg := config.Load()

	require.NotContains(t, cfg.App.CorsAllowedOrigins, "*",
		"default CORS origins must be concrete when credentials are allowed")

	var srv *Server
	require.NotPanics(t, func() {
		srv = New(cfg, &bootstrap.Container{ChatController: &stubController{}})
	})

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCorsRejectsUnlistedOrigin(t *testing.T) {
	cfg := config.Load()
	srv := New(cfg, &bootstrap.Container{ChatController: &stubController{}})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)

	allowed := resp.Header.Get("Access-Control-Allow-Origin")
	assert.True(t, allowed == "" || strings.EqualFold(allowed, cfg.App.CorsAllowedOrigins),
		"unlisted origin must not be echoed back, got %q", allowed)
}
