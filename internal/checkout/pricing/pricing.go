// Package pricing computes cost breakdowns for a set of cart line items.
// All functions are pure: same inputs, same breakdown, no side effects.
package pricing

import "github.com/storefront/checkout/internal/checkout/domain"

const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	// The comparison is strict: a subtotal exactly at the threshold still
	// pays the flat cost.
	FreeShippingThreshold = 100.0

	// FlatShippingCost applies to every order at or below the threshold.
	FlatShippingCost = 10.0

	// TaxRate applies to the subtotal. Tax is kept unrounded here;
	// rounding belongs to display formatting.
	TaxRate = 0.09
)

// Compute derives the full pricing breakdown for the given items and an
// already-resolved discount amount (0 for none). The effective unit price
// of each item is its discounted price when present, list price otherwise.
func Compute(items []domain.LineItem, discount float64) domain.PricingBreakdown {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice() * float64(it.Quantity)
	}

	shipping := FlatShippingCost
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	tax := subtotal * TaxRate

	return domain.PricingBreakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + shipping + tax - discount,
	}
}
