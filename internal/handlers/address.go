package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// AddressHandler resolves pincodes against the reference table
type AddressHandler struct {
	address *services.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(address *services.AddressService) *AddressHandler {
	return &AddressHandler{address: address}
}

// GetByPincode returns city/state reference data for an exact pincode match
func (h *AddressHandler) GetByPincode(c *fiber.Ctx) error {
	pincode := c.Params("pincode")

	info, err := h.address.GetAddressByPincode(pincode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Pincode not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(info)
}
