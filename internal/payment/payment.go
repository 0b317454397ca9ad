// Package payment defines the payment-processing collaborator invoked when a
// checkout flow confirms. The storefront never stores card data; it is handed
// to the processor and forgotten.
package payment

import (
	"context"
	"time"

	"atelier-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrDeclined aliases the domain error so callers can match either way.
var ErrDeclined = domain.ErrPaymentDeclined

type Card struct {
	HolderName string
	Number     string
	Expiry     string
	CVV        string
}

type Receipt struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processedAt"`
}

// Processor charges a card for an amount. A refused charge returns
// ErrDeclined; any other error means the outcome is unknown and the flow
// must not treat the order as paid.
type Processor interface {
	Charge(ctx context.Context, card Card, amount decimal.Decimal) (*Receipt, error)
}
