package handlers

import (
	"log/slog"

	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	wishlists *services.WishlistService
	log       *slog.Logger
}

func NewWishlistHandler(wishlists *services.WishlistService, log *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, log: log}
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var request struct {
		LandID string `json:"landId"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	wishlist, err := h.wishlists.Add(c.UserContext(), actor(c).UserID, request.LandID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Land added to wishlist",
		"data":    wishlist,
	})
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	landIDs, err := h.wishlists.Get(c.UserContext(), actor(c).UserID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(landIDs),
		"data":    landIDs,
	})
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	wishlist, removed, err := h.wishlists.Remove(c.UserContext(), actor(c).UserID, c.Params("landId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if removed {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Land removed; wishlist is now empty and was deleted",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Land removed from wishlist",
		"data":    wishlist,
	})
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	deleted, err := h.wishlists.Clear(c.UserContext(), actor(c).UserID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !deleted {
		return c.JSON(fiber.Map{"success": true, "message": "Wishlist was already empty"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Wishlist cleared"})
}
