package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"scl/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func TestJWTMiddlewareAcceptsGeneratedToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	token, err := GenerateJWT(42, "Jordan Miles", "USER", "jordan@example.com")
	require.NoError(t, err)

	app := testApp()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"userId":42`)
	assert.Contains(t, string(body), `"role":"USER"`)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := testApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsForeignSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "signing-secret"}
	token, err := GenerateJWT(7, "Sam", "ADMIN", "sam@example.com")
	require.NoError(t, err)

	// token signed with a different key must not verify
	config.AppConfig = &config.Config{JWTKey: "other-secret"}

	app := testApp()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
