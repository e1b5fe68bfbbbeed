package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arzan03/LandMarket/internal/auth"
	"github.com/arzan03/LandMarket/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newApp(tm *auth.TokenManager, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{Protect(tm)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		userID, role := Identity(c)
		return c.SendString(userID + "|" + role)
	})
	app.Get("/private", handlers...)
	return app
}

func do(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestProtect_MissingOrMalformed(t *testing.T) {
	app := newApp(auth.NewTokenManager(testSecret, time.Hour))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"no space after Bearer", "Bearertoken123"},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, tt.header)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestProtect_InvalidToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newApp(tm)

	forged, err := auth.NewTokenManager("other-secret", time.Hour).Generate("u1", models.RoleUser)
	require.NoError(t, err)
	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Generate("u1", models.RoleUser)
	require.NoError(t, err)

	for name, token := range map[string]string{"garbage": "abc.def.ghi", "forged": forged, "expired": expired} {
		t.Run(name, func(t *testing.T) {
			status, _ := do(t, app, "Bearer "+token)
			assert.Equal(t, http.StatusForbidden, status)
		})
	}
}

func TestProtect_ValidToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newApp(tm)

	token, err := tm.Generate("u1", models.RoleUser)
	require.NoError(t, err)

	status, body := do(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u1|USER", body)
}

func TestRequireRoles(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	app := newApp(tm, AdminOnly())

	userToken, err := tm.Generate("u1", models.RoleUser)
	require.NoError(t, err)
	adminToken, err := tm.Generate("a1", models.RoleAdmin)
	require.NoError(t, err)

	status, _ := do(t, app, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := do(t, app, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a1|ADMIN", body)
}
