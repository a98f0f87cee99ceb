package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/services"
)

// OrderHandler handles order placement and per-user order listing
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrderRequest is the order placement payload. UserID is optional; the
// storefront attributes anonymous checkouts to the default user.
type PlaceOrderRequest struct {
	UserID  int                `json:"userId"`
	Items   []models.OrderItem `json:"items"`
	Address *models.Address    `json:"address"`
}

// PlaceOrder validates the cart and address and appends a completed order
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	receipt, err := h.orders.PlaceOrder(req.UserID, req.Items, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Items are required",
			})
		case errors.Is(err, services.ErrAddressRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Address is required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// GetUserOrders lists a user's orders in store insertion order
func (h *OrderHandler) GetUserOrders(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	orders, err := h.orders.ListOrdersForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	return c.JSON(orders)
}
