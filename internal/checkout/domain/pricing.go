package domain

// PricingBreakdown is the derived cost summary for a set of line items.
// It is recomputed from its sources on every change, never stored on its
// own. Discount is omitted from JSON when no discount applies.
//
// Total is the exact sum subtotal + shipping + tax - discount with no
// rounding and no floor: a discount larger than subtotal plus fees yields
// a negative total rather than a silent clamp.
type PricingBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount,omitempty"`
	Total    float64 `json:"total"`
}
