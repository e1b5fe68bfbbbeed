package handlers

import (
	"log/slog"

	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the ADMIN-only routes.
type AdminHandler struct {
	users *services.UserService
	lands *services.LandService
	log   *slog.Logger
}

func NewAdminHandler(users *services.UserService, lands *services.LandService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, lands: lands, log: log}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": users, "count": len(users)})
}

func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var request struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.UpdateUserRole(c.UserContext(), c.Params("id"), request.Role)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated successfully", "user": user})
}

// SetApproval publishes or hides a land ad.
func (h *AdminHandler) SetApproval(c *fiber.Ctx) error {
	var request struct {
		IsApproved *bool `json:"isApproved"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.IsApproved == nil {
		return writeError(c, h.log, &services.ValidationError{Fields: []services.FieldError{{Field: "isApproved", Msg: "required"}}})
	}

	land, err := h.lands.SetApproval(c.UserContext(), c.Params("id"), *request.IsApproved)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Approval updated successfully", "data": land})
}
