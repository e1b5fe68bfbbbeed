package handlers

import (
	"log/slog"

	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
	log  *slog.Logger
}

func NewAuthHandler(auth *services.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Signup registers a user. Any role in the body is ignored.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var request services.SignupInput
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.auth.Signup(c.UserContext(), request)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, user, err := h.auth.Login(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  user.Role,
	})
}

// Logout is a client-side operation for stateless tokens.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
