package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/arzan03/LandMarket/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// MediaSource opens stored assets by public id.
type MediaSource interface {
	Open(ctx context.Context, publicID string) (io.ReadCloser, storage.ObjectInfo, error)
}

type MediaHandler struct {
	assets MediaSource
	log    *slog.Logger
}

func NewMediaHandler(assets MediaSource, log *slog.Logger) *MediaHandler {
	return &MediaHandler{assets: assets, log: log}
}

// Serve streams the image addressed by an upload URL path.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	publicID := storage.ExtractPublicID("/upload/" + c.Params("*"))
	if publicID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}

	body, info, err := h.assets.Open(c.UserContext(), publicID)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		h.log.Error("failed to open asset", "public_id", publicID, "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Image host unavailable"})
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	// Asset URLs are immutable: a replaced image gets a new public id.
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendStream(body, int(info.Size))
}
