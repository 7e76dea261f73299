package order

import (
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/shopspring/decimal"
)

// ShippingPolicy computes the shipping fee for a cart
type ShippingPolicy func(subtotal decimal.Decimal, lines []cart.Line) decimal.Decimal

// DefaultFlatRate is the shipping fee charged per order
var DefaultFlatRate = decimal.NewFromInt(10)

// FlatRate charges the same fee for any non-empty cart
func FlatRate(fee decimal.Decimal) ShippingPolicy {
	return func(_ decimal.Decimal, lines []cart.Line) decimal.Decimal {
		if len(lines) == 0 {
			return decimal.Zero
		}
		return fee
	}
}

// FreeOver charges fee unless the subtotal reaches threshold
func FreeOver(threshold, fee decimal.Decimal) ShippingPolicy {
	flat := FlatRate(fee)
	return func(subtotal decimal.Decimal, lines []cart.Line) decimal.Decimal {
		if subtotal.GreaterThanOrEqual(threshold) {
			return decimal.Zero
		}
		return flat(subtotal, lines)
	}
}
