package models

import "time"

// Address type constants (Address.Type)
const (
	AddressTypeHome  = 1
	AddressTypeWork  = 2
	AddressTypeOther = 3
)

// OrderStatusCompleted is the only status orders ever carry. There is no
// payment gateway behind this service; placing an order is pure bookkeeping.
const OrderStatusCompleted = "completed"

// FirstOrderID is assigned when the order store is empty.
const FirstOrderID = 1001

// Address is a delivery address. It is never stored on its own, only
// embedded inside an Order. Verified is set true after a successful
// pincode lookup.
type Address struct {
	Name      string `json:"name"`
	AddrLine1 string `json:"addrLine1"`
	AddrLine2 string `json:"addrLine2"`
	Pincode   int    `json:"pincode"`
	City      string `json:"city"`
	State     string `json:"state"`
	Type      int    `json:"type"`
	Verified  bool   `json:"verified"`
}

// OrderItem is a seva reference with its price captured at order time.
type OrderItem struct {
	ID              int     `json:"id"`
	Code            string  `json:"code"`
	Title           string  `json:"title"`
	DiscountedPrice float64 `json:"discountedPrice"`
}

// Order is an immutable record of a placed booking.
// OrderID is assigned as max existing id + 1 (FirstOrderID when the store is
// empty). Not safe under concurrent writers.
type Order struct {
	ID        int         `json:"-" gorm:"primaryKey"`
	OrderID   int         `json:"orderId" gorm:"uniqueIndex"`
	PaymentID string      `json:"paymentId"`
	Amount    float64     `json:"amountToPay" gorm:"column:amount_to_pay"`
	UserID    int         `json:"userId" gorm:"index"`
	Items     []OrderItem `json:"items" gorm:"serializer:json"`
	Address   Address     `json:"address" gorm:"embedded;embeddedPrefix:addr_"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderReceipt is what the caller gets back after placing an order.
type OrderReceipt struct {
	OrderID   int     `json:"orderId"`
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amountToPay"`
}
