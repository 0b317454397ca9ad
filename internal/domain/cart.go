package domain

import "github.com/shopspring/decimal"

type Cart struct {
	Lines []CartLine `json:"items"`
}

// CartLine is one cart entry, keyed by product + chosen size + chosen color.
// The product is snapshotted into the line so a persisted cart can be
// restored without consulting the catalog.
type CartLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Subtotal is the sum of price * quantity over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Count is the sum of line quantities.
func (c Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
