package handlers

import (
	"errors"
	"log/slog"

	"github.com/arzan03/LandMarket/internal/middleware"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/arzan03/LandMarket/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// writeError maps service and storage errors onto HTTP responses.
func writeError(c *fiber.Ctx, log *slog.Logger, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: access denied"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, storage.ErrUnsupportedImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, storage.ErrUploadTimeout), errors.Is(err, storage.ErrUpstream):
		log.Error("image host failure", "path", c.Path(), "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Image upload failed"})
	default:
		log.Error("request failed", "path", c.Path(), "method", c.Method(), "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

// ErrorHandler is the fiber fallback for errors returned by handlers and middleware.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return writeError(c, log, err)
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func actor(c *fiber.Ctx) services.Actor {
	userID, role := middleware.Identity(c)
	return services.Actor{UserID: userID, Role: role}
}
