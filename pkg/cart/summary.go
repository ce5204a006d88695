package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPromo = errors.New("invalid promo code")

var promoRates = map[string]decimal.Decimal{
	"SAVE10":   decimal.RequireFromString("0.10"),
	"SAVE20":   decimal.RequireFromString("0.20"),
	"WELCOME5": decimal.RequireFromString("0.05"),
}

var (
	taxRate           = decimal.RequireFromString("0.08")
	freeShippingAbove = decimal.NewFromInt(5000)
	shippingFee       = decimal.NewFromInt(99)
)

// Summary is the priced breakdown shown before checkout.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Promo    string          `json:"promo,omitempty"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// PromoRate returns the discount rate for code, ignoring case.
func PromoRate(code string) (decimal.Decimal, bool) {
	rate, ok := promoRates[strings.ToUpper(strings.TrimSpace(code))]
	return rate, ok
}

// Summarize prices subtotal with an optional promo code. Tax is 8% of
// the discounted subtotal; shipping is free strictly above 5000.
func Summarize(subtotal decimal.Decimal, promo string) (Summary, error) {
	sum := Summary{Subtotal: subtotal, Discount: decimal.Zero}

	if strings.TrimSpace(promo) != "" {
		rate, ok := PromoRate(promo)
		if !ok {
			return Summary{}, ErrInvalidPromo
		}
		sum.Promo = strings.ToUpper(strings.TrimSpace(promo))
		sum.Discount = subtotal.Mul(rate).Round(2)
	}

	sum.Tax = subtotal.Sub(sum.Discount).Mul(taxRate).Round(2)
	sum.Shipping = shippingFee
	if subtotal.GreaterThan(freeShippingAbove) {
		sum.Shipping = decimal.Zero
	}
	sum.Total = subtotal.Sub(sum.Discount).Add(sum.Tax).Add(sum.Shipping)
	return sum, nil
}
