package checkout

import (
	"atelier-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// The fixed shipping method set offered at checkout.
const (
	MethodStandard  = "standard"
	MethodExpress   = "express"
	MethodOvernight = "overnight"
)

func shippingMethods() []domain.ShippingMethod {
	return []domain.ShippingMethod{
		{
			ID:          MethodStandard,
			Name:        "Standard Shipping",
			Description: "Delivery in 3-5 business days",
			Price:       decimal.Zero,
		},
		{
			ID:          MethodExpress,
			Name:        "Express Shipping",
			Description: "Delivery in 2-3 business days",
			Price:       decimal.RequireFromString("9.99"),
		},
		{
			ID:          MethodOvernight,
			Name:        "Overnight Shipping",
			Description: "Delivery next business day",
			Price:       decimal.RequireFromString("19.99"),
		},
	}
}

// ShippingMethods returns the methods shown on the shipping step.
func (s *Service) ShippingMethods() []domain.ShippingMethod {
	return shippingMethods()
}

func methodPrice(id string) decimal.Decimal {
	for _, m := range shippingMethods() {
		if m.ID == id {
			return m.Price
		}
	}
	return decimal.Zero
}
