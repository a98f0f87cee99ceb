package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sevasetu/seva-backend/internal/models"
)

// OrderEventPublisher pushes order.placed events to Kafka so downstream
// consumers (receipts, analytics) can react. It is optional: a nil publisher
// is a no-op, and publishing is fire-and-forget with a bounded timeout so a
// slow broker never delays order placement.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher builds a publisher for the given broker and topic.
func NewOrderEventPublisher(broker, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
	}
}

type orderPlacedEvent struct {
	OrderID   int       `json:"orderId"`
	PaymentID string    `json:"paymentId"`
	Amount    float64   `json:"amountToPay"`
	UserID    int       `json:"userId"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublishOrderPlaced sends the event keyed by user id so a single user's
// orders stay ordered within a partition. Errors are logged, not returned.
func (p *OrderEventPublisher) PublishOrderPlaced(order *models.Order) {
	if p == nil {
		return
	}

	event := orderPlacedEvent{
		OrderID:   order.OrderID,
		PaymentID: order.PaymentID,
		Amount:    order.Amount,
		UserID:    order.UserID,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal order event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(order.UserID)),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("❌ Failed to publish order event: %v", err)
	}
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
