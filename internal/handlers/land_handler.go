package handlers

import (
	"log/slog"
	"strconv"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LandHandler struct {
	lands *services.LandService
	log   *slog.Logger
}

func NewLandHandler(lands *services.LandService, log *slog.Logger) *LandHandler {
	return &LandHandler{lands: lands, log: log}
}

// CreateLand handles a multipart ad with up to ten images. userId defaults to the caller.
func (h *LandHandler) CreateLand(c *fiber.Ctx) error {
	caller := actor(c)

	in, err := parseLandInput(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if in.UserID == "" {
		in.UserID = caller.UserID
	}

	files, err := readImages(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	land, err := h.lands.CreateLand(c.UserContext(), caller, in, files)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Land ad created successfully",
		"data":    land,
	})
}

func (h *LandHandler) GetAllLands(c *fiber.Ctx) error {
	filter := models.LandFilter{
		City:     c.Query("city"),
		District: c.Query("district"),
	}
	if raw := c.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "approved must be true or false")
		}
		filter.Approved = &approved
	}

	lands, err := h.lands.GetAllLands(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": lands, "count": len(lands)})
}

func (h *LandHandler) GetLandsByUser(c *fiber.Ctx) error {
	lands, err := h.lands.GetLandsByUserID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": lands, "count": len(lands)})
}

func (h *LandHandler) GetLand(c *fiber.Ctx) error {
	land, err := h.lands.GetLandByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": land})
}

// UpdateLand merges the provided fields. New images replace the old ones.
func (h *LandHandler) UpdateLand(c *fiber.Ctx) error {
	patch, err := parseLandPatch(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	files, err := readImages(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	land, err := h.lands.UpdateLand(c.UserContext(), actor(c), c.Params("id"), patch, files)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Land ad updated successfully", "data": land})
}

func (h *LandHandler) UpdateLandImages(c *fiber.Ctx) error {
	files, err := readImages(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	land, err := h.lands.UpdateLandImages(c.UserContext(), actor(c), c.Params("id"), files)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Images updated successfully", "data": land})
}

func (h *LandHandler) RemoveImages(c *fiber.Ctx) error {
	var request struct {
		ImageURLs []string `json:"imageUrls"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	land, err := h.lands.RemoveImagesFromLand(c.UserContext(), actor(c), c.Params("id"), request.ImageURLs)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Images removed successfully", "data": land})
}

func (h *LandHandler) DeleteLand(c *fiber.Ctx) error {
	land, err := h.lands.DeleteLand(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Land ad deleted successfully", "data": land})
}
