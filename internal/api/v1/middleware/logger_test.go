package middleware

import (
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Logger())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(HeaderRequestID).(string))
	}).Name("Ok")
	app.Get("/fail", func(_ *fiber.Ctx) error {
		return fiber.ErrTeapot
	})
	return app
}

func TestRequestIDGenerated(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	id := resp.Header.Get(HeaderRequestID)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(fiber.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "client-id")

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-id", resp.Header.Get(HeaderRequestID))
}

func TestLoggerPassesErrorsThrough(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
