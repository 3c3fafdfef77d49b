package domain

import "time"

// DiscountType distinguishes percentage coupons from flat-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is one entry of the static coupon registry. UsageLimit of zero
// means unlimited. UsedCount is read during validation but never written:
// the registry is read-only at runtime.
type Coupon struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	ExpiryDate    time.Time    `json:"expiryDate"`
	UsageLimit    int          `json:"usageLimit,omitempty"`
	UsedCount     int          `json:"usedCount,omitempty"`
	MinPurchase   float64      `json:"minPurchase"`
}
