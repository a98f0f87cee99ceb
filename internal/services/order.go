package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sevasetu/seva-backend/internal/metrics"
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/storage"
	"github.com/sevasetu/seva-backend/internal/utils"
)

// ErrInvalidOrder is the parent of the field-specific validation errors
// below; errors.Is(err, ErrInvalidOrder) matches both.
var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrItemsRequired   = fmt.Errorf("%w: items are required", ErrInvalidOrder)
	ErrAddressRequired = fmt.Errorf("%w: address is required", ErrInvalidOrder)
)

// DefaultUserID is attributed to orders placed without an authenticated
// user, mirroring the reference storefront.
const DefaultUserID = 1

// OrderService validates a cart plus address and appends completed orders to
// the store. There is no inventory decrement and no payment gateway call;
// placing an order is purely bookkeeping.
type OrderService struct {
	store   storage.Store
	events  *OrderEventPublisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewOrderService creates an order service. events and metrics may be nil.
func NewOrderService(store storage.Store, events *OrderEventPublisher, m *metrics.Metrics) *OrderService {
	return &OrderService{
		store:   store,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

// PlaceOrder computes the total, assigns order and payment ids, and appends
// the order. A zero userID is attributed to DefaultUserID. Item entries with
// no price count as zero.
func (s *OrderService) PlaceOrder(userID int, items []models.OrderItem, address *models.Address) (*models.OrderReceipt, error) {
	if len(items) == 0 {
		return nil, ErrItemsRequired
	}
	if address == nil {
		return nil, ErrAddressRequired
	}
	if userID == 0 {
		userID = DefaultUserID
	}

	var amount float64
	for _, item := range items {
		amount += item.DiscountedPrice
	}

	order := &models.Order{
		PaymentID: utils.GeneratePaymentID(s.now()),
		Amount:    amount,
		UserID:    userID,
		Items:     items,
		Address:   *address,
		Status:    models.OrderStatusCompleted,
	}

	order, err := s.store.CreateOrder(order)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
		s.metrics.OrderAmount.Add(order.Amount)
	}
	go s.events.PublishOrderPlaced(order)

	return &models.OrderReceipt{
		OrderID:   order.OrderID,
		PaymentID: order.PaymentID,
		Amount:    order.Amount,
	}, nil
}

// ListOrdersForUser returns the user's orders in store insertion order.
func (s *OrderService) ListOrdersForUser(userID int) ([]*models.Order, error) {
	return s.store.GetOrdersByUser(userID)
}
