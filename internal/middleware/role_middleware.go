package middleware

import (
	"github.com/arzan03/LandMarket/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets the request through only if the role attached by Protect is one of roles.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		_, role := Identity(c)
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: access denied"})
		}
		return c.Next()
	}
}

// AdminOnly ensures that only users with the ADMIN role reach the handler
func AdminOnly() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}
