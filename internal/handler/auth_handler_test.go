package handler

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
	"github.com/eunoia-app/eunoia-api/internal/service"
)

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	db := setupTestDB(t, &models.User{})
	svc := service.NewAuthService(repository.NewUserRepository(db), "test-secret", zerolog.Nop())

	app := fiber.New()
	NewAuthHandler(svc, zerolog.Nop()).Register(app.Group("/api/auth"))
	return app
}

func TestRegisterEndpoint(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "teen@example.com",
		"password": "secret123",
		"nickname": "小明",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "teen@example.com", data["email"])
	require.NotZero(t, data["id"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	app := newAuthApp(t)

	body := fiber.Map{"email": "teen@example.com", "password": "secret123"}
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.False(t, decodeEnvelope(t, resp).Success)
}

func TestRegisterEndpointValidation(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "secret123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	app := newAuthApp(t)

	body := fiber.Map{"email": "teen@example.com", "password": "secret123"}
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, data["token"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "secret123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
