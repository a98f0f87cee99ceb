package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/checkout"
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// CheckoutHandler exposes the checkout session state machine over HTTP.
// Every response carries the session, whose state and message tell the
// client where the flow stands.
type CheckoutHandler struct {
	flow *checkout.Flow
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(flow *checkout.Flow) *CheckoutHandler {
	return &CheckoutHandler{flow: flow}
}

// Start opens a session with a snapshot of the cart
func (h *CheckoutHandler) Start(c *fiber.Ctx) error {
	var req struct {
		Items []models.OrderItem `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Items are required",
		})
	}

	session := h.flow.Start(req.Items)
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Get returns the current session state
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	session, err := h.flow.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Checkout session not found",
		})
	}
	return c.JSON(session)
}

// SubmitMobile runs the identity check for the entered mobile
func (h *CheckoutHandler) SubmitMobile(c *fiber.Ctx) error {
	var req struct {
		Contact string `json:"contact"`
	}
	if err := c.BodyParser(&req); err != nil || req.Contact == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Contact number is required",
		})
	}

	session, err := h.flow.SubmitMobile(c.Context(), c.Params("id"), req.Contact)
	return h.respond(c, session, err)
}

// RequestOTP issues a challenge for a known user
func (h *CheckoutHandler) RequestOTP(c *fiber.Ctx) error {
	session, err := h.flow.RequestOTP(c.Context(), c.Params("id"))
	return h.respond(c, session, err)
}

// SignUp creates the account mid-checkout and issues the signup OTP
func (h *CheckoutHandler) SignUp(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and email are required",
		})
	}

	session, err := h.flow.SignUp(c.Context(), c.Params("id"), req.Name, req.Email)
	return h.respond(c, session, err)
}

// SubmitOTP verifies the pending challenge
func (h *CheckoutHandler) SubmitOTP(c *fiber.Ctx) error {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "OTP is required",
		})
	}

	session, err := h.flow.SubmitOTP(c.Context(), c.Params("id"), req.OTP)
	return h.respond(c, session, err)
}

// SubmitAddress validates the delivery address pincode
func (h *CheckoutHandler) SubmitAddress(c *fiber.Ctx) error {
	var req models.Address
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.flow.SubmitAddress(c.Context(), c.Params("id"), req)
	return h.respond(c, session, err)
}

// SubmitPayment captures the card fields and places the order
func (h *CheckoutHandler) SubmitPayment(c *fiber.Ctx) error {
	var req struct {
		CardNumber string `json:"cardNumber"`
		Expiry     string `json:"expiry"`
		CVV        string `json:"cvv"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.flow.SubmitPayment(c.Context(), c.Params("id"), req.CardNumber, req.Expiry, req.CVV)
	return h.respond(c, session, err)
}

// respond maps flow errors onto statuses while always returning the session
// so the client sees the surfaced message and the state it reverted to.
func (h *CheckoutHandler) respond(c *fiber.Ctx, session *checkout.Session, err error) error {
	if err == nil {
		return c.JSON(session)
	}

	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Checkout session not found",
		})
	case errors.Is(err, checkout.ErrInvalidTransition),
		errors.Is(err, storage.ErrConflict),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, otp.ErrChallengeNotFound),
		errors.Is(err, otp.ErrChallengeExpired),
		errors.Is(err, otp.ErrTooManyAttempts),
		errors.Is(err, services.ErrInvalidOrder):
		return c.Status(fiber.StatusBadRequest).JSON(session)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
