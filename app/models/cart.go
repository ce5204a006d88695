package models

import (
	"github.com/shopspring/decimal"
)

// CartLineItem is one product in the cart. Quantity is always at least 1.
type CartLineItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (c CartLineItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
