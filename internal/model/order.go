package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks the payment lifecycle of an order.
type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDING"
	OrderPaid     OrderStatus = "PAID"
	OrderFailed   OrderStatus = "FAILED"
	OrderCanceled OrderStatus = "CANCELED"
)

// Order represents a customer order.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Email           *string     `json:"email,omitempty" db:"email"`
	Phone           *string     `json:"phone,omitempty" db:"phone"`
	StripeSessionID *string     `json:"stripeSessionId,omitempty" db:"stripe_session_id"`
	TotalCents      int         `json:"totalCents" db:"total_cents"`
	Currency        string      `json:"currency" db:"currency"`
	Status          OrderStatus `json:"status" db:"status"`
	IsRead          bool        `json:"isRead" db:"is_read"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item snapshot taken at checkout time. Name, price and
// image are denormalised so the order survives later catalogue edits.
type OrderItem struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	BouquetID  *string   `json:"bouquetId,omitempty" db:"bouquet_id"`
	Name       string    `json:"name" db:"name"`
	PriceCents int       `json:"priceCents" db:"price_cents"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Image      string    `json:"image" db:"image"`
}

// CheckoutRequest is the request payload for starting a checkout.
type CheckoutRequest struct {
	Email *string    `json:"email,omitempty"`
	Phone *string    `json:"phone,omitempty"`
	Items []CartItem `json:"items"`
}

// CheckoutResponse is returned after an order has been created and a payment
// session opened for it.
type CheckoutResponse struct {
	OrderID    uuid.UUID `json:"orderId"`
	TotalCents int       `json:"totalCents"`
	Currency   string    `json:"currency"`
	PaymentURL string    `json:"paymentUrl"`
}

// OrderResponse is the order detail payload. StatusDisplay is the
// customer-facing wording for the order status.
type OrderResponse struct {
	Order         Order       `json:"order"`
	Items         []OrderItem `json:"items"`
	StatusDisplay string      `json:"statusDisplay"`
}
