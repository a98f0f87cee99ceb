package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/services"
)

// OTPHandler handles challenge issuance and verification
type OTPHandler struct {
	otps     *services.OTPService
	validate *validator.Validate
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otps *services.OTPService, validate *validator.Validate) *OTPHandler {
	return &OTPHandler{otps: otps, validate: validate}
}

// SendOTPRequest asks for a challenge against a contact.
type SendOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
}

// VerifyOTPRequest submits a code for the pending challenge.
type VerifyOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
	OTP     string `json:"otp" validate:"required"`
}

// SendOTP issues a new challenge, overwriting any pending one
func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	var req SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Contact number is required",
		})
	}

	if err := h.otps.Issue(c.Context(), req.Contact); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "OTP sent successfully",
	})
}

// VerifyOTP checks a submitted code. A plain mismatch is a 200 with
// valid=false; a missing, expired, or exhausted challenge is a 400 with a
// descriptive message.
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Contact and OTP are required",
		})
	}

	valid, err := h.otps.Verify(c.Context(), req.Contact, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrChallengeNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "OTP not found or expired",
			})
		case errors.Is(err, otp.ErrChallengeExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "OTP expired",
			})
		case errors.Is(err, otp.ErrTooManyAttempts):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Too many attempts",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if !valid {
		return c.JSON(fiber.Map{
			"valid":   false,
			"message": "Invalid OTP",
		})
	}

	return c.JSON(fiber.Map{
		"valid":   true,
		"message": "OTP verified successfully",
	})
}
