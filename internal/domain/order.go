package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ShippingMethod is one entry of the fixed method set offered at checkout.
type ShippingMethod struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// OrderTotals is derived from cart contents plus the selected shipping
// method; it is recomputed on demand, never stored.
type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Order is the finalized record produced when a checkout flow confirms.
type Order struct {
	ID              string      `json:"id"`
	SessionID       string      `json:"-"`
	UserID          string      `json:"userId,omitempty"`
	Items           []CartLine  `json:"items"`
	Status          string      `json:"status"`
	Totals          OrderTotals `json:"totals"`
	ShippingAddress Address     `json:"shippingAddress"`
	ShippingMethod  string      `json:"shippingMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
