package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sevasetu/seva-backend/internal/checkout"
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/routes"
	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

type captureNotifier struct {
	code string
}

func (c *captureNotifier) SendOTP(_, code string) error {
	c.code = code
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore, *captureNotifier) {
	t.Helper()

	store := storage.NewMemoryStore()
	for i := 1; i <= 15; i++ {
		_, err := store.CreateSeva(&models.Seva{
			Code:            fmt.Sprintf("SEVA_%03d", i),
			Title:           fmt.Sprintf("Seva %d", i),
			DiscountedPrice: float64(i * 100),
			MarketPrice:     float64(i * 120),
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.CreatePincode(&models.PincodeInfo{
		Pincode: "560001",
		City:    "Bengaluru",
		State:   "Karnataka",
		Country: "India",
	}))

	notifier := &captureNotifier{}
	otpService := services.NewOTPService(otp.NewMemoryRegistry(), notifier, nil)
	identityService := services.NewIdentityService(store)
	orderService := services.NewOrderService(store, nil, nil)
	addressService := services.NewAddressService(store)

	app := fiber.New()
	routes.SetupRoutes(app, routes.Services{
		Catalog:  services.NewCatalogService(store),
		Identity: identityService,
		OTP:      otpService,
		Orders:   orderService,
		Address:  addressService,
		Checkout: checkout.NewFlow(identityService, otpService, orderService, addressService),
	})

	return app, store, notifier
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestListSevas(t *testing.T) {
	app, _, _ := newTestApp(t)

	t.Run("default pagination", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/sevas", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sevas []models.Seva
		require.NoError(t, json.Unmarshal(body, &sevas))
		require.Len(t, sevas, 10)
		require.Equal(t, "SEVA_001", sevas[0].Code)
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/sevas?page=2&limit=10", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sevas []models.Seva
		require.NoError(t, json.Unmarshal(body, &sevas))
		require.Len(t, sevas, 5)
		require.Equal(t, "SEVA_011", sevas[0].Code)
	})

	t.Run("out of range page yields empty array", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/sevas?page=9&limit=10", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, "[]", string(body))
	})
}

func TestGetSevaByCode(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/sevas/SEVA_007", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var seva models.Seva
	require.NoError(t, json.Unmarshal(body, &seva))
	require.Equal(t, "Seva 7", seva.Title)

	resp, _ = doJSON(t, app, http.MethodGet, "/sevas/NO_SUCH", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIdentityEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/users/identity-exist/9876543210", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "false", string(body))

	resp, body = doJSON(t, app, http.MethodPost, "/users", map[string]string{
		"contact": "9876543210",
		"name":    "Ananya",
		"email":   "ananya@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(body, &user))
	require.Equal(t, 1, user.ID)

	resp, body = doJSON(t, app, http.MethodGet, "/users/identity-exist/9876543210", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "true", string(body))

	resp, _ = doJSON(t, app, http.MethodGet, "/users/9876543210", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/users/9000000000", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	t.Run("duplicate contact conflicts", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/users", map[string]string{
			"contact": "9876543210",
			"name":    "Someone Else",
			"email":   "other@example.com",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(body), "User already exists")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/users", map[string]string{
			"contact": "9123456789",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestOTPEndpoints(t *testing.T) {
	app, _, notifier := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/otp", map[string]string{"contact": "9876543210"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "OTP sent successfully")
	require.Len(t, notifier.code, 6)

	t.Run("wrong code is 200 with valid=false", func(t *testing.T) {
		wrong := "000000"
		if notifier.code == wrong {
			wrong = "000001"
		}
		resp, body := doJSON(t, app, http.MethodPost, "/otp-verify", map[string]string{
			"contact": "9876543210",
			"otp":     wrong,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Valid   bool   `json:"valid"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		require.False(t, result.Valid)
		require.Equal(t, "Invalid OTP", result.Message)
	})

	t.Run("correct code verifies and consumes", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/otp-verify", map[string]string{
			"contact": "9876543210",
			"otp":     notifier.code,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Valid bool `json:"valid"`
		}
		require.NoError(t, json.Unmarshal(body, &result))
		require.True(t, result.Valid)

		resp, body = doJSON(t, app, http.MethodPost, "/otp-verify", map[string]string{
			"contact": "9876543210",
			"otp":     notifier.code,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(body), "OTP not found or expired")
	})

	t.Run("missing contact rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/otp", map[string]string{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAddressByPincode(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/address-by-pincode/560001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info models.PincodeInfo
	require.NoError(t, json.Unmarshal(body, &info))
	require.Equal(t, "Bengaluru", info.City)
	require.Equal(t, "Karnataka", info.State)

	resp, _ = doJSON(t, app, http.MethodGet, "/address-by-pincode/000000", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderEndpoints(t *testing.T) {
	app, store, _ := newTestApp(t)

	address := map[string]any{
		"name":      "Ananya",
		"addrLine1": "12 Temple Street",
		"pincode":   560001,
		"city":      "Bengaluru",
		"state":     "Karnataka",
		"type":      models.AddressTypeHome,
		"verified":  true,
	}

	t.Run("place order", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/order", map[string]any{
			"userId": 3,
			"items": []map[string]any{
				{"code": "SEVA_001", "discountedPrice": 100},
				{"code": "SEVA_002", "discountedPrice": 250},
			},
			"address": address,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var receipt models.OrderReceipt
		require.NoError(t, json.Unmarshal(body, &receipt))
		require.Equal(t, models.FirstOrderID, receipt.OrderID)
		require.Equal(t, 350.0, receipt.Amount)
		require.NotEmpty(t, receipt.PaymentID)
	})

	t.Run("empty items rejected, store unchanged", func(t *testing.T) {
		before, err := store.CountOrders()
		require.NoError(t, err)

		resp, body := doJSON(t, app, http.MethodPost, "/order", map[string]any{
			"items":   []map[string]any{},
			"address": address,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(body), "Items are required")

		after, err := store.CountOrders()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("missing address rejected", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/order", map[string]any{
			"items": []map[string]any{{"code": "SEVA_001", "discountedPrice": 100}},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(body), "Address is required")
	})

	t.Run("list user orders", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/orders/3", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var orders []models.Order
		require.NoError(t, json.Unmarshal(body, &orders))
		require.Len(t, orders, 1)
		require.Equal(t, models.OrderStatusCompleted, orders[0].Status)

		resp, body = doJSON(t, app, http.MethodGet, "/orders/99", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, "[]", string(body))
	})
}

func TestCheckoutEndpoints(t *testing.T) {
	app, _, notifier := newTestApp(t)

	var session checkout.Session

	resp, body := doJSON(t, app, http.MethodPost, "/checkout", map[string]any{
		"items": []map[string]any{{"code": "SEVA_001", "discountedPrice": 1100}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateAnonymous, session.State)

	base := "/checkout/" + session.ID

	resp, body = doJSON(t, app, http.MethodPost, base+"/mobile", map[string]string{"contact": "9876543210"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateUnknownUser, session.State)

	resp, body = doJSON(t, app, http.MethodPost, base+"/signup", map[string]string{
		"name":  "Ananya",
		"email": "ananya@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateOTPPending, session.State)

	resp, body = doJSON(t, app, http.MethodPost, base+"/otp", map[string]string{"otp": notifier.code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateVerified, session.State)

	resp, body = doJSON(t, app, http.MethodPost, base+"/address", map[string]any{
		"name":      "Ananya",
		"addrLine1": "12 Temple Street",
		"pincode":   560001,
		"type":      models.AddressTypeHome,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateAddressValid, session.State)

	resp, body = doJSON(t, app, http.MethodPost, base+"/payment", map[string]string{
		"cardNumber": "4111111111111111",
		"expiry":     "12/27",
		"cvv":        "123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &session))
	require.Equal(t, checkout.StateOrderPlaced, session.State)
	require.NotNil(t, session.Receipt)
	require.Equal(t, 1100.0, session.Receipt.Amount)

	t.Run("unknown session is 404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/checkout/no-such-session", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid transition is 400 with session state", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, base+"/otp", map[string]string{"otp": "123456"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var s checkout.Session
		require.NoError(t, json.Unmarshal(body, &s))
		require.Equal(t, checkout.StateOrderPlaced, s.State)
	})
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, "OK", health.Status)
	require.NotEmpty(t, health.Timestamp)
}
