package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// UserHandler handles identity requests keyed by mobile contact
type UserHandler struct {
	identity *services.IdentityService
	validate *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(identity *services.IdentityService, validate *validator.Validate) *UserHandler {
	return &UserHandler{identity: identity, validate: validate}
}

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Contact string `json:"contact" validate:"required,len=10,numeric"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// IdentityExists reports whether a user with the given mobile exists.
// The body is a bare JSON boolean, as the storefront expects.
func (h *UserHandler) IdentityExists(c *fiber.Ctx) error {
	mobile := c.Params("mobile")

	exists, err := h.identity.UserExists(mobile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(exists)
}

// GetUser retrieves the user record for a mobile contact
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	mobile := c.Params("mobile")

	user, err := h.identity.GetUserByContact(mobile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(user)
}

// CreateUser registers a new user. The signup OTP is issued by the calling
// flow (the client posts to /otp right after), not here.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Contact, name, and email are required",
		})
	}

	user, err := h.identity.CreateUser(req.Contact, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
