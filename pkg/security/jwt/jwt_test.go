package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/auth"
)

func testApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":   c.Locals("userId"),
			"username": c.Locals("username"),
		})
	})
	return app
}

func TestGenerateAndValidate(t *testing.T) {
	gen := NewGenerator("secret", "pepper-tutor", time.Hour)
	user := auth.User{ID: uuid.New(), Username: "alice"}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	app := testApp("secret", "pepper-tutor")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_BareToken(t *testing.T) {
	gen := NewGenerator("secret", "pepper-tutor", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New(), Username: "bob"})
	require.NoError(t, err)

	app := testApp("secret", "pepper-tutor")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	app := testApp("secret", "pepper-tutor")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_WrongSecret(t *testing.T) {
	gen := NewGenerator("other-secret", "pepper-tutor", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	app := testApp("secret", "pepper-tutor")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_WrongIssuer(t *testing.T) {
	gen := NewGenerator("secret", "someone-else", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	app := testApp("secret", "pepper-tutor")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	gen := NewGenerator("secret", "pepper-tutor", -time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	app := testApp("secret", "pepper-tutor")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
