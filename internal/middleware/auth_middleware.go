package middleware

import (
	"strings"

	"github.com/arzan03/LandMarket/internal/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Protect validates the bearer token and stores the caller's id and role in locals.
// A missing token is 401; a token that fails verification is 403.
func Protect(tm *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		// Ensure it's a Bearer token
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token format"})
		}

		claims, err := tm.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// Identity returns the caller attached by Protect.
func Identity(c *fiber.Ctx) (userID, role string) {
	userID, _ = c.Locals(LocalUserID).(string)
	role, _ = c.Locals(LocalRole).(string)
	return userID, role
}
