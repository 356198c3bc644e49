package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(token string) *fiber.App {
	app := fiber.New()
	admin := app.Group("/admin", AdminAuth(token))
	admin.Post("/movies", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		authHeader string
		wantStatus int
	}{
		{"disabled when no token configured", "", "", fiber.StatusOK},
		{"missing header", "secret", "", fiber.StatusUnauthorized},
		{"wrong scheme", "secret", "Basic secret", fiber.StatusUnauthorized},
		{"wrong token", "secret", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "secret", "Bearer secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(tt.token)
			req := httptest.NewRequest("POST", "/admin/movies", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
