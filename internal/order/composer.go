package order

import (
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/shopspring/decimal"
)

// Customer holds the contact fields collected by the checkout form
type Customer struct {
	Name    string
	Email   string
	Address string
	City    string
	Zip     string
}

// GuestCustomer is used when no checkout form details were supplied
func GuestCustomer() Customer {
	return Customer{
		Name:    "Guest",
		Email:   "guest@example.com",
		Address: "123 Holiday Lane",
		City:    "North Pole",
		Zip:     "00000",
	}
}

// Line is one order entry, built from a cart line
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// Totals are derived from a cart snapshot
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Payload is a submittable order
type Payload struct {
	Customer Customer
	Items    []Line
	Totals   Totals
}

// Result is the backend confirmation of a placed order
type Result struct {
	ID    string
	Total decimal.Decimal
}

// ConfirmationCode is the short code shown to the customer: the last six characters of the id
func (r Result) ConfirmationCode() string {
	if len(r.ID) <= 6 {
		return r.ID
	}
	return r.ID[len(r.ID)-6:]
}

// Subtotal sums unit price × quantity using the prices captured at add time
func Subtotal(lines []cart.Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	return subtotal
}

// ComputeTotals derives subtotal, shipping and total. A nil policy means free shipping.
func ComputeTotals(lines []cart.Line, shipping ShippingPolicy) Totals {
	subtotal := Subtotal(lines)
	fee := decimal.Zero
	if shipping != nil {
		fee = shipping(subtotal, lines)
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: fee,
		Total:    subtotal.Add(fee),
	}
}

// Compose builds the order payload, one entry per cart line in cart order
func Compose(customer Customer, lines []cart.Line, shipping ShippingPolicy) Payload {
	items := make([]Line, len(lines))
	for i, l := range lines {
		items[i] = Line{
			ProductID: l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		}
	}
	return Payload{
		Customer: customer,
		Items:    items,
		Totals:   ComputeTotals(lines, shipping),
	}
}
