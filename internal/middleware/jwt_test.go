package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "jwt-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp() (*fiber.App, *struct {
	userID uint
	email  string
}) {
	seen := &struct {
		userID uint
		email  string
	}{}

	app := fiber.New()
	app.Get("/protected", JWTProtected(jwtTestSecret), func(c *fiber.Ctx) error {
		seen.userID, _ = c.Locals("user_id").(uint)
		seen.email, _ = c.Locals("user_email").(string)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, seen
}

func TestJWTProtectedValidToken(t *testing.T) {
	app, seen := newProtectedApp()

	token := signToken(t, jwtTestSecret, jwt.MapClaims{
		"sub":   float64(42),
		"email": "teen@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, uint(42), seen.userID)
	require.Equal(t, "teen@example.com", seen.email)
}

func TestJWTProtectedMissingHeader(t *testing.T) {
	app, _ := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedWrongSecret(t *testing.T) {
	app, _ := newProtectedApp()

	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub":   float64(42),
		"email": "teen@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedExpiredToken(t *testing.T) {
	app, _ := newProtectedApp()

	token := signToken(t, jwtTestSecret, jwt.MapClaims{
		"sub":   float64(42),
		"email": "teen@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedMissingEmailClaim(t *testing.T) {
	app, _ := newProtectedApp()

	token := signToken(t, jwtTestSecret, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
