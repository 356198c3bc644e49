package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// AdminAuth guards admin routes with a static bearer token.
// An empty configured token disables the check (local development).
func AdminAuth(token string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}

		if strings.TrimPrefix(authHeader, "Bearer ") != token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin token",
			})
		}

		return c.Next()
	}
}
