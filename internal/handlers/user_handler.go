package handlers

import (
	"log/slog"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves profile routes. Callers may only act on their own profile unless ADMIN.
type UserHandler struct {
	users *services.UserService
	log   *slog.Logger
}

func NewUserHandler(users *services.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateUser changes profile fields. A role in the body is ignored.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.UpdateUser(c.UserContext(), actor(c), c.Params("id"), update)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "User updated successfully", "user": user})
}

// DeleteUser removes the account along with its ads and wishlist.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	user, removed, err := h.users.DeleteUser(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":      "User deleted successfully",
		"user":         user,
		"deletedLands": removed,
	})
}
