package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// CatalogHandler handles seva catalog requests
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSevas returns one page of the catalog. Out-of-range pages yield an
// empty array, not an error.
func (h *CatalogHandler) ListSevas(c *fiber.Ctx) error {
	page := c.QueryInt("page", services.DefaultPage)
	limit := c.QueryInt("limit", services.DefaultLimit)

	sevas, err := h.catalog.ListSevas(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(sevas)
}

// GetSevaByCode retrieves a single seva by its lookup code
func (h *CatalogHandler) GetSevaByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	seva, err := h.catalog.GetSevaByCode(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Seva not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(seva)
}
