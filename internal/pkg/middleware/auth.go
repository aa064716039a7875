package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// RequireAPIAuth ensures a logged-in session for API routes and returns JSON
// 401 when the caller identity is missing.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
