// Package coupon validates discount codes against a static registry.
//
// Validation is an ordered short-circuit pipeline: existence, not already
// applied, not expired, usage limit, minimum purchase. The first failing
// check determines the message; later checks never run. The registry is
// read-only at runtime: UsedCount is consulted but never incremented.
package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/storefront/checkout/internal/checkout/domain"
)

// Registry maps an uppercase coupon code to its rule set.
type Registry map[string]domain.Coupon

// Result is the outcome of validating a code. Discount and Coupon are set
// only when Valid is true.
type Result struct {
	Valid    bool
	Message  string
	Discount float64
	Coupon   *domain.Coupon
}

// Validate checks code against the registry for an order at the given
// subtotal. appliedCode is the code currently active on the session (empty
// when none); now supplies the clock for expiry checks.
func Validate(code string, reg Registry, subtotal float64, appliedCode string, now time.Time) Result {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	c, ok := reg[normalized]
	if !ok {
		return Result{Message: "Invalid coupon code"}
	}
	if normalized == appliedCode {
		return Result{Message: "Coupon already applied"}
	}
	if now.After(c.ExpiryDate) {
		return Result{Message: "This coupon has expired"}
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return Result{Message: "Coupon usage limit reached"}
	}
	if subtotal < c.MinPurchase {
		return Result{Message: fmt.Sprintf("Minimum purchase of $%.2f required", c.MinPurchase)}
	}

	discount := c.DiscountValue
	if c.DiscountType == domain.DiscountPercentage {
		discount = subtotal * c.DiscountValue / 100
	}

	return Result{
		Valid:    true,
		Message:  fmt.Sprintf("Coupon applied! You saved $%.2f", discount),
		Discount: discount,
		Coupon:   &c,
	}
}

// DefaultRegistry returns the built-in coupon set.
func DefaultRegistry() Registry {
	return Registry{
		"SAVE10": {
			Code:          "SAVE10",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 10,
			ExpiryDate:    time.Date(2027, 12, 31, 23, 59, 59, 0, time.UTC),
			MinPurchase:   50,
		},
		"WELCOME20": {
			Code:          "WELCOME20",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 20,
			ExpiryDate:    time.Date(2027, 12, 31, 23, 59, 59, 0, time.UTC),
			UsageLimit:    100,
			MinPurchase:   100,
		},
		"FLAT25": {
			Code:          "FLAT25",
			DiscountType:  domain.DiscountFixed,
			DiscountValue: 25,
			ExpiryDate:    time.Date(2027, 6, 30, 23, 59, 59, 0, time.UTC),
			MinPurchase:   150,
		},
		"SUMMER15": {
			Code:          "SUMMER15",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 15,
			ExpiryDate:    time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC),
			MinPurchase:   75,
		},
	}
}
