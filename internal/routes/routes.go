package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sevasetu/seva-backend/internal/checkout"
	"github.com/sevasetu/seva-backend/internal/handlers"
	"github.com/sevasetu/seva-backend/internal/services"
)

// Services bundles everything the routes need.
type Services struct {
	Catalog  *services.CatalogService
	Identity *services.IdentityService
	OTP      *services.OTPService
	Orders   *services.OrderService
	Address  *services.AddressService
	Checkout *checkout.Flow
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc Services) {
	validate := validator.New()

	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)
	userHandler := handlers.NewUserHandler(svc.Identity, validate)
	otpHandler := handlers.NewOTPHandler(svc.OTP, validate)
	addressHandler := handlers.NewAddressHandler(svc.Address)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	// Catalog
	app.Get("/sevas", catalogHandler.ListSevas)
	app.Get("/sevas/:code", catalogHandler.GetSevaByCode)

	// Identity
	app.Get("/users/identity-exist/:mobile", userHandler.IdentityExists)
	app.Get("/users/:mobile", userHandler.GetUser)
	app.Post("/users", userHandler.CreateUser)

	// OTP challenge flow
	app.Post("/otp", otpHandler.SendOTP)
	app.Post("/otp-verify", otpHandler.VerifyOTP)

	// Address lookup
	app.Get("/address-by-pincode/:pincode", addressHandler.GetByPincode)

	// Orders
	app.Post("/order", orderHandler.PlaceOrder)
	app.Get("/orders/:userId", orderHandler.GetUserOrders)

	// Checkout sessions
	co := app.Group("/checkout")
	co.Post("/", checkoutHandler.Start)
	co.Get("/:id", checkoutHandler.Get)
	co.Post("/:id/mobile", checkoutHandler.SubmitMobile)
	co.Post("/:id/signup", checkoutHandler.SignUp)
	co.Post("/:id/otp/send", checkoutHandler.RequestOTP)
	co.Post("/:id/otp", checkoutHandler.SubmitOTP)
	co.Post("/:id/address", checkoutHandler.SubmitAddress)
	co.Post("/:id/payment", checkoutHandler.SubmitPayment)

	// Health check
	app.Get("/health", healthHandler.Check)
}
