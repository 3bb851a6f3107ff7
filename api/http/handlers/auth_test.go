package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/auth"
)

type stubAuthUseCase struct {
	result auth.AuthResult
	err    error
}

func (s *stubAuthUseCase) Register(_ context.Context, username, password string) (auth.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthUseCase) Login(_ context.Context, username, password string) (auth.AuthResult, error) {
	return s.result, s.err
}

func authApp(uc auth.AuthUseCase) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(uc)
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegister_Created(t *testing.T) {
	user := auth.User{ID: uuid.New(), Username: "alice", CreatedAt: time.Now().UTC()}
	app := authApp(&stubAuthUseCase{result: auth.AuthResult{User: user, Token: "tok"}})

	resp := postJSON(t, app, "/register", fiber.Map{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "tok", body["token"])
}

func TestRegister_MissingFields(t *testing.T) {
	app := authApp(&stubAuthUseCase{})

	resp := postJSON(t, app, "/register", fiber.Map{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_Conflict(t *testing.T) {
	app := authApp(&stubAuthUseCase{err: auth.ErrUserAlreadyExists})

	resp := postJSON(t, app, "/register", fiber.Map{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := authApp(&stubAuthUseCase{err: auth.ErrInvalidCredentials})

	resp := postJSON(t, app, "/login", fiber.Map{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_OK(t *testing.T) {
	user := auth.User{ID: uuid.New(), Username: "alice"}
	app := authApp(&stubAuthUseCase{result: auth.AuthResult{User: user, Token: "tok"}})

	resp := postJSON(t, app, "/login", fiber.Map{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
